package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointToSegmentDistance(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{10, 0}

	t.Run("projects inside segment", func(t *testing.T) {
		p := PointToSegmentDistance(orb.Point{5, 3}, a, b)
		assert.InDelta(t, 3.0, p.Distance, 1e-12)
		assert.Equal(t, orb.Point{5, 0}, p.Nearest)
	})

	t.Run("clamps before start", func(t *testing.T) {
		p := PointToSegmentDistance(orb.Point{-3, 4}, a, b)
		assert.InDelta(t, 5.0, p.Distance, 1e-12)
		assert.Equal(t, a, p.Nearest)
	})

	t.Run("clamps after end", func(t *testing.T) {
		p := PointToSegmentDistance(orb.Point{13, -4}, a, b)
		assert.InDelta(t, 5.0, p.Distance, 1e-12)
		assert.Equal(t, b, p.Nearest)
	})

	t.Run("degenerate segment", func(t *testing.T) {
		p := PointToSegmentDistance(orb.Point{3, 4}, a, a)
		assert.InDelta(t, 5.0, p.Distance, 1e-12)
		assert.Equal(t, a, p.Nearest)
	})
}

func TestCenters(t *testing.T) {
	assert.Equal(t, orb.Point{5, 1}, Midpoint(orb.LineString{{0, 0}, {10, 2}}))

	rect := RectPolygon(2, 3, 1, 2)
	require.Len(t, rect[0], 5)
	assert.Equal(t, rect[0][0], rect[0][4])
	assert.Equal(t, orb.Point{2, 3}, Centroid(rect[0]))

	assert.Equal(t, orb.Point{7, 8}, ObjectCenter(orb.Point{7, 8}))
	assert.Equal(t, orb.Point{5, 1}, ObjectCenter(orb.LineString{{0, 0}, {10, 2}}))
	assert.Equal(t, orb.Point{2, 3}, ObjectCenter(rect))
	assert.Equal(t, orb.Point{0, 0}, ObjectCenter(orb.MultiPoint{{4, 4}}))
}

func TestRotatePoint(t *testing.T) {
	p := RotatePoint(orb.Point{2, 1}, orb.Point{1, 1}, 90)
	assert.InDelta(t, 1.0, p[0], 1e-12)
	assert.InDelta(t, 2.0, p[1], 1e-12)

	p = RotatePoint(orb.Point{2, 1}, orb.Point{1, 1}, 180)
	assert.InDelta(t, 0.0, p[0], 1e-12)
	assert.InDelta(t, 1.0, p[1], 1e-12)
}

func TestTranslateRoundTrip(t *testing.T) {
	shapes := []orb.Geometry{
		orb.Point{0.25, -1.5},
		orb.LineString{{0, 0}, {10, 0}},
		RectPolygon(-122.4194, 37.7749, 0.00003, 0.00005),
	}

	for _, g := range shapes {
		moved := Translate(g, 0.5, -0.25)
		assert.Equal(t, g.GeoJSONType(), moved.GeoJSONType())
		assert.Equal(t, g, Translate(moved, -0.5, 0.25))
	}
}

func TestTranslateDoesNotAlias(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 1}}
	moved := Translate(ls, 1, 1).(orb.LineString)
	moved[0] = orb.Point{9, 9}
	assert.Equal(t, orb.Point{0, 0}, ls[0])
}

func TestRotateKeepsCentroid(t *testing.T) {
	rect := RectPolygon(5, 5, 1, 3)
	rotated := Rotate(rect, Centroid(rect[0]), 37).(orb.Polygon)

	c := Centroid(rotated[0])
	assert.InDelta(t, 5.0, c[0], 1e-9)
	assert.InDelta(t, 5.0, c[1], 1e-9)
	assert.Equal(t, rotated[0][0], rotated[0][4])
}

func TestHitDistance(t *testing.T) {
	assert.InDelta(t, 5.0, HitDistance(orb.Point{0, 0}, orb.Point{3, 4}), 1e-12)
	assert.InDelta(t, 2.0, HitDistance(orb.LineString{{0, 0}, {10, 0}}, orb.Point{4, 2}), 1e-12)

	rect := RectPolygon(0, 0, 1, 1)
	assert.Equal(t, 0.0, HitDistance(rect, orb.Point{0.5, 0.5}))
	assert.InDelta(t, 1.0, HitDistance(rect, orb.Point{2, 0}), 1e-12)

	assert.True(t, math.IsInf(HitDistance(orb.MultiPoint{}, orb.Point{}), 1))
}
