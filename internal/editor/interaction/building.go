package interaction

import (
	"indoor-editor/internal/editor/geometry"

	"github.com/paulmach/orb"
)

// Fallback: прямоугольник, который используется, когда у здания
// нет полигонального контура.
type Fallback struct {
	Center     orb.Point
	HalfWidth  float64
	HalfHeight float64
}

// DefaultFallback is centred on San Francisco.
func DefaultFallback() Fallback {
	return Fallback{
		Center:     orb.Point{-122.4194, 37.7749},
		HalfWidth:  0.0003,
		HalfHeight: 0.0002,
	}
}

// FloorPolygon derives a floor outline from a building footprint: a Polygon
// is copied, a MultiPolygon contributes its first member, anything else
// falls back to a fixed rectangle.
func FloorPolygon(footprint orb.Geometry, fb Fallback) orb.Polygon {
	switch fp := footprint.(type) {
	case orb.Polygon:
		if len(fp) > 0 {
			return fp.Clone()
		}
	case orb.MultiPolygon:
		if len(fp) > 0 && len(fp[0]) > 0 {
			return fp[0].Clone()
		}
	}
	return geometry.RectPolygon(fb.Center[0], fb.Center[1], fb.HalfWidth, fb.HalfHeight)
}
