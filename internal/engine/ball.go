package engine

import (
	"encoding/json"
	"fmt"
)

type BallType string

const (
	Fast  = BallType("fast")
	Swing = BallType("swing")
	Spin  = BallType("spin")
)

// ParseBallType accepts the three delivery kinds. "yorker" is still sent by
// older planners and plays as a fast ball.
func ParseBallType(s string) (BallType, error) {
	switch s {
	case "fast", "yorker":
		return Fast, nil
	case "swing":
		return Swing, nil
	case "spin":
		return Spin, nil
	default:
		return "", fmt.Errorf("unknown ball type %q", s)
	}
}

func (t *BallType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseBallType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Trail keeps the most recent positions of a ball, oldest first.
type Trail struct {
	cap    int
	points []Vec
}

func NewTrail(capacity int) Trail {
	return Trail{cap: capacity, points: make([]Vec, 0, capacity)}
}

func (t *Trail) Push(p Vec) {
	if t.cap <= 0 {
		return
	}
	if len(t.points) == t.cap {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.cap-1]
	}
	t.points = append(t.points, p)
}

func (t *Trail) Len() int { return len(t.points) }

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []Vec {
	out := make([]Vec, len(t.points))
	copy(out, t.points)
	return out
}

type Ball struct {
	Pos       Vec
	Vel       Vec
	Radius    float64
	Speed     int // launch speed rating shown as km/h
	Type      BallType
	Trail     Trail
	Bounced   bool
	Deviation float64
	Power     float64 // power level at the moment of the hit
}

type Fielder struct {
	Pos Vec
}

// MarshalJSON flattens the fielder to the {x,y} shape used on the wire.
func (f Fielder) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Pos)
}

func (f *Fielder) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &f.Pos)
}
