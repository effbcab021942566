package interaction

import (
	"sort"

	"indoor-editor/internal/editor/geometry"
	"indoor-editor/internal/editor/models"

	"github.com/paulmach/orb"
)

// HitTester reports which objects are struck at a pointer position,
// nearest first.
type HitTester interface {
	HitTest(p orb.Point, objects []*models.IndoorObject) []string
}

// GeometryHitTester hits objects whose shape lies within Tolerance of p.
// Ties go to the object drawn last.
type GeometryHitTester struct {
	Tolerance float64
}

func (h GeometryHitTester) HitTest(p orb.Point, objects []*models.IndoorObject) []string {
	type hit struct {
		id   string
		dist float64
	}

	var hits []hit
	for i := len(objects) - 1; i >= 0; i-- {
		d := geometry.HitDistance(objects[i].Geometry, p)
		if d <= h.Tolerance {
			hits = append(hits, hit{id: objects[i].ID, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}
