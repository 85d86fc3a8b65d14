package players

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
