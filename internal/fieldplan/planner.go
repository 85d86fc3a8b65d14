package fieldplan

import (
	"math/rand"
	"sync"

	"cricketarcade/internal/engine"
	"cricketarcade/internal/planner"
)

var ballTypes = []engine.BallType{engine.Fast, engine.Swing, engine.Spin}

// Planner chooses the field and ball for each delivery. It is safe for
// concurrent use.
type Planner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(src rand.Source) *Planner {
	return &Planner{rng: rand.New(src)}
}

// Plan lays out the base field for the over count and moves fielders onto
// the batter's hot zones once the shot history is long enough.
func (p *Planner) Plan(overs int, history []engine.Vec) planner.Plan {
	fielders := BaseLayout(overs)
	for i, zone := range HotZones(history) {
		if i < len(hotZoneSlots) {
			fielders[hotZoneSlots[i]] = engine.Fielder{Pos: zone}
		}
	}
	return planner.Plan{Fielders: fielders, BallType: p.BallType()}
}

func (p *Planner) BallType() engine.BallType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ballTypes[p.rng.Intn(len(ballTypes))]
}
