package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ============================================================
// Distance & projection
// ============================================================

// Projection: результат проекции точки на отрезок.
type Projection struct {
	Distance float64
	Nearest  orb.Point
}

// PointToSegmentDistance проецирует p на отрезок [a, b] (t ограничен [0, 1]).
// Для вырожденного отрезка a == b возвращается расстояние до a.
func PointToSegmentDistance(p, a, b orb.Point) Projection {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return Projection{Distance: planar.Distance(p, a), Nearest: a}
	}

	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	nearest := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return Projection{Distance: planar.Distance(p, nearest), Nearest: nearest}
}

// ============================================================
// Centers
// ============================================================

// Midpoint of a two-point line string.
func Midpoint(ls orb.LineString) orb.Point {
	if len(ls) < 2 {
		if len(ls) == 1 {
			return ls[0]
		}
		return orb.Point{}
	}
	a, b := ls[0], ls[1]
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// Centroid: среднее арифметическое вершин кольца без замыкающей точки.
func Centroid(ring orb.Ring) orb.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	if n == 0 {
		return orb.Point{}
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += ring[i][0]
		sumY += ring[i][1]
	}
	return orb.Point{sumX / float64(n), sumY / float64(n)}
}

// ObjectCenter возвращает центр поддерживаемой геометрии.
// Неподдерживаемые формы дают начало координат.
func ObjectCenter(g orb.Geometry) orb.Point {
	switch geom := g.(type) {
	case orb.Point:
		return geom
	case orb.LineString:
		return Midpoint(geom)
	case orb.Polygon:
		if len(geom) == 0 {
			return orb.Point{}
		}
		return Centroid(geom[0])
	}
	return orb.Point{}
}

// ============================================================
// Transforms
// ============================================================

// RotatePoint rotates p counter-clockwise about center by angle degrees.
func RotatePoint(p, center orb.Point, angle float64) orb.Point {
	rad := angle * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	dx := p[0] - center[0]
	dy := p[1] - center[1]
	return orb.Point{center[0] + dx*cos - dy*sin, center[1] + dx*sin + dy*cos}
}

// Translate сдвигает каждую вершину на (dx, dy); тип геометрии сохраняется.
func Translate(g orb.Geometry, dx, dy float64) orb.Geometry {
	return mapPoints(g, func(p orb.Point) orb.Point {
		return orb.Point{p[0] + dx, p[1] + dy}
	})
}

// Rotate поворачивает каждую вершину вокруг center.
func Rotate(g orb.Geometry, center orb.Point, angle float64) orb.Geometry {
	return mapPoints(g, func(p orb.Point) orb.Point {
		return RotatePoint(p, center, angle)
	})
}

func mapPoints(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch geom := g.(type) {
	case orb.Point:
		return fn(geom)
	case orb.LineString:
		out := make(orb.LineString, len(geom))
		for i, p := range geom {
			out[i] = fn(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(geom))
		for i, ring := range geom {
			r := make(orb.Ring, len(ring))
			for j, p := range ring {
				r[j] = fn(p)
			}
			out[i] = r
		}
		return out
	}
	return g
}

// RectPolygon creates an axis-aligned rectangle centred at (cx, cy).
func RectPolygon(cx, cy, halfWidth, halfHeight float64) orb.Polygon {
	return orb.Polygon{
		orb.Ring{
			{cx - halfWidth, cy - halfHeight},
			{cx + halfWidth, cy - halfHeight},
			{cx + halfWidth, cy + halfHeight},
			{cx - halfWidth, cy + halfHeight},
			{cx - halfWidth, cy - halfHeight}, // замыкание
		},
	}
}

// ============================================================
// Hit testing
// ============================================================

// HitDistance: расстояние от p до нарисованной формы; внутри полигона 0.
func HitDistance(g orb.Geometry, p orb.Point) float64 {
	switch geom := g.(type) {
	case orb.Point:
		return planar.Distance(geom, p)
	case orb.LineString:
		best := math.Inf(1)
		for i := 1; i < len(geom); i++ {
			if d := PointToSegmentDistance(p, geom[i-1], geom[i]).Distance; d < best {
				best = d
			}
		}
		if len(geom) == 1 {
			best = planar.Distance(geom[0], p)
		}
		return best
	case orb.Polygon:
		if len(geom) == 0 {
			return math.Inf(1)
		}
		if planar.PolygonContains(geom, p) {
			return 0
		}
		return HitDistance(orb.LineString(geom[0]), p)
	}
	return math.Inf(1)
}
