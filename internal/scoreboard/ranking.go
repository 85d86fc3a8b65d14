package scoreboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/iancoleman/orderedmap"
)

type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Ranking is a leaderboard in the order the service ranked it. On the wire
// it is a JSON object from player name to score whose key order is the rank
// order, so it cannot round-trip through a Go map.
type Ranking []Entry

func (r Ranking) MarshalJSON() ([]byte, error) {
	om := orderedmap.New()
	for _, e := range r {
		om.Set(e.Name, e.Score)
	}
	return json.Marshal(om)
}

func (r *Ranking) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = nil
		return nil
	}

	om := orderedmap.New()
	if err := json.Unmarshal(b, om); err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	out := make(Ranking, 0, len(om.Keys()))
	for _, name := range om.Keys() {
		v, _ := om.Get(name)
		score, ok := v.(float64)
		if !ok || score != math.Trunc(score) {
			return fmt.Errorf("leaderboard score for %q: want integer, got %v", name, v)
		}
		out = append(out, Entry{Name: name, Score: int(score)})
	}
	*r = out
	return nil
}
