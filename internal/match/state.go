package match

import (
	"fmt"
	"time"

	"cricketarcade/internal/engine"
	"cricketarcade/internal/planner"
)

type State string

const (
	StateLoading    = State("LOADING")
	StateReady      = State("READY")
	StateCharging   = State("CHARGING")
	StateBallInPlay = State("BALL_IN_PLAY")
	StateOutcome    = State("OUTCOME")
)

// Stats is mutated only by hits and outcome resolution.
type Stats struct {
	Score   int `json:"score"`
	Balls   int `json:"balls"`
	Overs   int `json:"overs"`
	Wickets int `json:"wickets"`
}

// OverString formats the over count the way a scoreboard shows it, e.g. "1.3".
func (s Stats) OverString() string {
	return fmt.Sprintf("%d.%d", s.Overs, s.Balls%6)
}

type Config struct {
	SessionID    string
	PlayerName   string
	OutcomeDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		PlayerName:   "Player 1",
		OutcomeDelay: 2 * time.Second,
	}
}

// Effect is work the match asks its host to perform outside the frame loop.
type Effect interface {
	effect()
}

// FetchPlan requests the next delivery plan. Only the result carrying the
// latest Seq is applied.
type FetchPlan struct {
	Seq     int
	Request planner.Request
}

// PostScore reports the cumulative score. Fire and forget.
type PostScore struct {
	Name  string
	Score int
}

// ScheduleReady asks for OutcomeElapsed(Epoch) to be called After the delay.
type ScheduleReady struct {
	Epoch int
	After time.Duration
}

func (FetchPlan) effect()     {}
func (PostScore) effect()     {}
func (ScheduleReady) effect() {}

// BallView is the renderer's read-only copy of the live ball.
type BallView struct {
	Pos    engine.Vec      `json:"pos"`
	Radius float64         `json:"radius"`
	Type   engine.BallType `json:"type"`
	Speed  int             `json:"speed"`
	Trail  []engine.Vec    `json:"trail"`
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	State        State            `json:"state"`
	Power        float64          `json:"power"`
	Pointer      engine.Vec       `json:"pointer"`
	Batter       engine.Vec       `json:"batter"`
	Stats        Stats            `json:"stats"`
	Over         string           `json:"over"`
	Ball         *BallView        `json:"ball,omitempty"`
	Fielders     []engine.Fielder `json:"fielders"`
	NextBallType engine.BallType  `json:"nextBallType"`
	HUDSpeed     string           `json:"hudSpeed"`
	HUDType      string           `json:"hudType"`
	Message      string           `json:"message,omitempty"`
	Error        string           `json:"error,omitempty"`
}
