package fieldplan

import "cricketarcade/internal/engine"

// baseConfigs are the three eleven-fielder layouts on the 600x400 field,
// rotated by over count.
var baseConfigs = [3][11]engine.Vec{
	{{X: 260, Y: 280}, {X: 180, Y: 260}, {X: 140, Y: 210}, {X: 170, Y: 140}, {X: 250, Y: 110}, {X: 350, Y: 110}, {X: 430, Y: 170}, {X: 460, Y: 240}, {X: 500, Y: 180}, {X: 100, Y: 100}, {X: 480, Y: 60}},
	{{X: 250, Y: 285}, {X: 220, Y: 290}, {X: 170, Y: 260}, {X: 130, Y: 200}, {X: 160, Y: 130}, {X: 90, Y: 80}, {X: 240, Y: 100}, {X: 180, Y: 50}, {X: 360, Y: 110}, {X: 450, Y: 180}, {X: 520, Y: 250}},
	{{X: 550, Y: 300}, {X: 480, Y: 150}, {X: 500, Y: 80}, {X: 400, Y: 50}, {X: 560, Y: 220}, {X: 370, Y: 140}, {X: 430, Y: 210}, {X: 180, Y: 160}, {X: 140, Y: 230}, {X: 240, Y: 140}, {X: 120, Y: 120}},
}

// hotZoneSlots are the fielder indices moved onto hot zones, in order.
var hotZoneSlots = [NumClusters]int{3, 6}

// BaseLayout returns a copy of the layout used for the given over count.
func BaseLayout(overs int) []engine.Fielder {
	idx := overs % len(baseConfigs)
	if idx < 0 {
		idx += len(baseConfigs)
	}
	out := make([]engine.Fielder, 0, len(baseConfigs[idx]))
	for _, p := range baseConfigs[idx] {
		out = append(out, engine.Fielder{Pos: p})
	}
	return out
}
