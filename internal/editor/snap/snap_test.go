package snap

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCoordDisabledIsIdentity(t *testing.T) {
	g := NewGrid(DefaultInterval)
	p := orb.Point{-122.419412, 37.774923}
	assert.Equal(t, p, g.Coord(p, false))
}

func TestCoordRoundsEachAxis(t *testing.T) {
	g := NewGrid(0.5)
	assert.Equal(t, orb.Point{1.5, -2}, g.Coord(orb.Point{1.3, -2.2}, true))
	assert.Equal(t, orb.Point{0, 3}, g.Coord(orb.Point{0.2, 2.8}, true))
}

func TestCoordIdempotent(t *testing.T) {
	g := NewGrid(DefaultInterval)
	points := []orb.Point{
		{-122.419412, 37.774923},
		{139.767125, 35.681236},
		{0.000026, -0.000074},
	}
	for _, p := range points {
		once := g.Coord(p, true)
		assert.Equal(t, once, g.Coord(once, true))
	}
}

func TestNewGridDefaultsInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewGrid(0).Interval)
}
