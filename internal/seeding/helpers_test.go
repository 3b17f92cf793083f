package seeding

import (
	"math"
	"testing"
)

// seedTrackPoints builds five straight rays from the origin at well
// separated azimuths, with hits on three layers (r = 30, 70, 120) and
// a common slope dz/dr = 0.5. Each point carries a unique layer tag so
// seeds can be identified independently of pointer identity.
func seedTrackPoints() []SpacePoint {
	radii := []float64{30, 70, 120}
	var points []SpacePoint
	id := 0
	for k := 0; k < 5; k++ {
		phi := 0.8 * float64(k)
		for _, r := range radii {
			points = append(points, NewSpacePoint(
				r*math.Cos(phi), r*math.Sin(phi), 0.5*r, id, 0, 0))
			id++
		}
	}
	return points
}

// runGroups drives the full pipeline and returns the per-group seed
// slices in emission order.
func runGroups(t *testing.T, points []SpacePoint, cfg Config) [][]Seed {
	t.Helper()
	finder, err := NewSeedfinder(cfg)
	if err != nil {
		t.Fatalf("NewSeedfinder: %v", err)
	}
	grid, err := BuildGrid(points, cfg)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	var out [][]Seed
	it := NewBinnedGroups(grid, NewBinFinder(), NewBinFinder())
	for it.Next() {
		out = append(out, finder.CreateSeedsForGroup(it.Bottom(), it.Middle(), it.Top()))
	}
	return out
}

// flattenSeeds concatenates group outputs.
func flattenSeeds(groups [][]Seed) []Seed {
	var all []Seed
	for _, seeds := range groups {
		all = append(all, seeds...)
	}
	return all
}

// seedKey identifies a seed by the layer tags of its points.
type seedKey struct {
	Bottom, Middle, Top int
}

func keyOf(s Seed) seedKey {
	return seedKey{Bottom: s.Bottom.Layer, Middle: s.Middle.Layer, Top: s.Top.Layer}
}
