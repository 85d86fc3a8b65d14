package engine

import "fmt"

// Tuning holds every constant the simulation reads. Units are engine units
// per tick; they are stylised, not physical.
type Tuning struct {
	Field  Boundary
	Batter Vec
	Pitch  Band

	ChargePerTick float64 // power gained per tick while charging
	MaxPower      float64

	BaseSpeed       float64 // launch speed rating at zero power
	SpeedRange      float64 // added at full power
	VelocityDivisor float64 // speed rating -> units per tick
	BallRadius      float64
	TrailCap        int

	DeviationSpread float64 // deviation drawn uniformly from ±spread/2
	SwingFactor     float64
	SpinImpulse     float64
	BounceDamping   float64 // multiplies vy on bounce, negative
	Friction        float64 // fraction of velocity lost per tick after bounce

	ChaseRadius float64
	ChaseStep   float64
	CatchRadius float64
	StopSpeed   float64

	SixThreshold float64 // power-at-hit strictly above this scores six
}

// Canvas is the flat 600x400 field.
func Canvas() Tuning {
	const w, h = 600.0, 400.0
	return Tuning{
		Field:  Rect{Min: Vec{0, 0}, Max: Vec{w, h}},
		Batter: Vec{w / 2, h/2 + 60},
		Pitch:  Band{Lo: h/2 - 60, Hi: h/2 + 60},

		ChargePerTick: 1.5,
		MaxPower:      100,

		BaseSpeed:       80,
		SpeedRange:      120,
		VelocityDivisor: 90,
		BallRadius:      6,
		TrailCap:        20,

		DeviationSpread: 0.2,
		SwingFactor:     0.01,
		SpinImpulse:     4.5,
		BounceDamping:   -0.6,

		ChaseRadius: 120,
		ChaseStep:   0.7,
		CatchRadius: 20,
		StopSpeed:   0.05,

		SixThreshold: 75,
	}
}

// Arena is the oval ground of the 3D scene, with its x/z plane mapped onto
// x/y.
func Arena() Tuning {
	t := Canvas()
	t.Field = Ellipse{Center: Vec{0, 0}, RX: 90, RY: 60}
	t.Batter = Vec{0, 30}
	t.Pitch = Band{Lo: -40, Hi: 40}
	t.VelocityDivisor = 45
	t.BallRadius = 2
	t.ChaseRadius = 200
	t.ChaseStep = 0.5
	t.CatchRadius = 5
	return t
}

// Preset returns the tuning for a named presentation variant.
func Preset(name string) (Tuning, error) {
	switch name {
	case "", "canvas":
		return Canvas(), nil
	case "arena":
		return Arena(), nil
	default:
		return Tuning{}, fmt.Errorf("unknown variant %q", name)
	}
}
