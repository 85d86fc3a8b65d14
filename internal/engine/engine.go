package engine

import (
	"fmt"
	"math"
	"math/rand"
)

type OutcomeKind int

const (
	InPlay OutcomeKind = iota
	Caught
	Runs
	Stopped
)

func (k OutcomeKind) String() string {
	switch k {
	case Caught:
		return "caught"
	case Runs:
		return "runs"
	case Stopped:
		return "stopped"
	default:
		return "in_play"
	}
}

// Outcome is the terminal classification of a delivery. Kind is InPlay while
// the ball is still moving.
type Outcome struct {
	Kind    OutcomeKind
	Runs    int
	Landing Vec
}

func (o Outcome) Terminal() bool { return o.Kind != InPlay }

// Message is the banner text shown while the outcome is displayed.
func (o Outcome) Message() string {
	switch o.Kind {
	case Caught:
		return "CAUGHT!"
	case Runs:
		return fmt.Sprintf("%d RUNS!", o.Runs)
	case Stopped:
		return "STOPPED"
	default:
		return ""
	}
}

// Engine advances a single ball against a set of fielders. It holds no
// per-delivery state of its own; the caller owns the ball and fielders.
type Engine struct {
	Tuning Tuning
	rng    *rand.Rand
}

func New(t Tuning, src rand.Source) *Engine {
	return &Engine{Tuning: t, rng: rand.New(src)}
}

// LaunchSpeed is the speed rating for a power level.
func (e *Engine) LaunchSpeed(power float64) float64 {
	return e.Tuning.BaseSpeed + e.Tuning.SpeedRange*(power/e.Tuning.MaxPower)
}

// RunsFor is the boundary value for a power-at-hit.
func (e *Engine) RunsFor(power float64) int {
	if power > e.Tuning.SixThreshold {
		return 6
	}
	return 4
}

// Launch creates a ball leaving the batter towards aim. It reports false and
// creates nothing when aim coincides with the batter.
func (e *Engine) Launch(aim Vec, power float64, typ BallType) (*Ball, bool) {
	t := e.Tuning
	dir := aim.Sub(t.Batter)
	dist := dir.Len()
	if dist == 0 {
		return nil, false
	}
	if typ == "" {
		typ = Fast
	}

	speed := e.LaunchSpeed(power)
	vel := dir.Scale(1 / dist).Scale(speed / t.VelocityDivisor)

	var deviation float64
	if typ != Fast {
		deviation = (e.rng.Float64() - 0.5) * t.DeviationSpread
	}

	return &Ball{
		Pos:       t.Batter,
		Vel:       vel,
		Radius:    t.BallRadius,
		Speed:     int(math.Round(speed)),
		Type:      typ,
		Trail:     NewTrail(t.TrailCap),
		Deviation: deviation,
		Power:     power,
	}, true
}

// Step advances the ball by one tick and moves the fielders. At most one
// terminal outcome is reported per call; a catch takes priority over the
// boundary and stop checks. The ball bounces the first time it crosses into
// the pitch band from outside it, so a batter standing inside the band can
// still hit away from the pitch.
func (e *Engine) Step(b *Ball, fielders []Fielder) Outcome {
	t := e.Tuning

	if b.Type == Swing && !b.Bounced {
		b.Vel.X += -b.Vel.Y * b.Deviation * t.SwingFactor
		b.Vel.Y += b.Vel.X * b.Deviation * t.SwingFactor
	}
	if b.Type == Spin && b.Bounced {
		b.Vel.X += b.Deviation * t.SpinImpulse
		b.Type = Fast
	}

	prevY := b.Pos.Y
	b.Trail.Push(b.Pos)
	b.Pos = b.Pos.Add(b.Vel)

	if !b.Bounced && !t.Pitch.Contains(prevY) && t.Pitch.Contains(b.Pos.Y) {
		b.Vel.Y *= t.BounceDamping
		b.Bounced = true
	}

	for i := range fielders {
		f := &fielders[i]
		dist := Dist(b.Pos, f.Pos)
		if dist < t.ChaseRadius && dist > 0 {
			f.Pos = f.Pos.Add(b.Pos.Sub(f.Pos).Scale(t.ChaseStep / dist))
		}
		if dist < t.CatchRadius {
			return Outcome{Kind: Caught, Landing: b.Pos}
		}
	}

	if !t.Field.Contains(b.Pos) {
		return Outcome{Kind: Runs, Runs: e.RunsFor(b.Power), Landing: b.Pos}
	}

	if b.Bounced && t.Friction > 0 {
		b.Vel = b.Vel.Scale(1 - t.Friction)
	}
	if b.Vel.Len() < t.StopSpeed {
		return Outcome{Kind: Stopped, Landing: b.Pos}
	}
	return Outcome{Kind: InPlay}
}
