package engine

import "math"

// Vec is a point or displacement in engine units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Boundary is the playable area. A ball whose position is not contained has
// reached the boundary.
type Boundary interface {
	Contains(p Vec) bool
}

// Rect is an axis-aligned playable rectangle, edges inclusive.
type Rect struct {
	Min, Max Vec
}

func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Ellipse is an oval playable area, edge inclusive.
type Ellipse struct {
	Center Vec
	RX, RY float64
}

func (e Ellipse) Contains(p Vec) bool {
	dx := (p.X - e.Center.X) / e.RX
	dy := (p.Y - e.Center.Y) / e.RY
	return dx*dx+dy*dy <= 1
}

// Band is an open interval on the y axis.
type Band struct {
	Lo, Hi float64
}

func (b Band) Contains(y float64) bool { return y > b.Lo && y < b.Hi }
