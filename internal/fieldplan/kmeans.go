package fieldplan

import (
	"log"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"cricketarcade/internal/engine"
)

const NumClusters = 2

// HotZones clusters landing positions into NumClusters centroids ordered by
// x then y. With NumClusters or fewer shots there is nothing to learn and it
// returns nil.
func HotZones(history []engine.Vec) []engine.Vec {
	if len(history) <= NumClusters {
		return nil
	}
	if distinct(history) < NumClusters {
		zones := make([]engine.Vec, NumClusters)
		for i := range zones {
			zones[i] = history[0]
		}
		return zones
	}

	// kmeans seeds its centres inside the unit square, so shots are scaled
	// into it and the centroids scaled back out.
	lo, scale := bounds(history)
	obs := make(clusters.Observations, len(history))
	for i, p := range history {
		obs[i] = clusters.Coordinates{(p.X - lo.X) / scale.X, (p.Y - lo.Y) / scale.Y}
	}

	cc, err := kmeans.New().Partition(obs, NumClusters)
	if err != nil {
		log.Printf("[FieldPlan] Clustering %d shots failed: %v\n", len(history), err)
		return nil
	}

	centers := make([]engine.Vec, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 2 {
			continue
		}
		centers = append(centers, engine.Vec{
			X: lo.X + c.Center[0]*scale.X,
			Y: lo.Y + c.Center[1]*scale.Y,
		})
	}

	sort.Slice(centers, func(i, j int) bool {
		if centers[i].X != centers[j].X {
			return centers[i].X < centers[j].X
		}
		return centers[i].Y < centers[j].Y
	})
	return centers
}

// bounds returns the lower corner of the shots' bounding box and its size,
// with a flat dimension treated as size 1.
func bounds(points []engine.Vec) (engine.Vec, engine.Vec) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
	}
	size := hi.Sub(lo)
	if size.X == 0 {
		size.X = 1
	}
	if size.Y == 0 {
		size.Y = 1
	}
	return lo, size
}

func distinct(points []engine.Vec) int {
	seen := make(map[engine.Vec]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}
