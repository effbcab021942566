package snap

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultInterval: шаг сетки в градусах (~5 м на средних широтах).
const DefaultInterval = 0.00005

// Grid квантует координаты указателя к фиксированной сетке.
type Grid struct {
	Interval float64
}

func NewGrid(interval float64) Grid {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Grid{Interval: interval}
}

// Coord rounds each axis to the nearest multiple of the interval when enabled.
func (g Grid) Coord(p orb.Point, enabled bool) orb.Point {
	if !enabled || g.Interval <= 0 {
		return p
	}
	return orb.Point{
		math.Round(p[0]/g.Interval) * g.Interval,
		math.Round(p[1]/g.Interval) * g.Interval,
	}
}
