package interaction

import (
	"math"

	"indoor-editor/internal/editor/geometry"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/store"

	"github.com/paulmach/orb"
)

// ============================================================
// Click
// ============================================================

// Click handles a pointer click. With no tool it selects the nearest hit
// object; with a placement tool it places (or starts placing) an object.
// The created object is returned when the click committed one.
func (c *Controller) Click(p orb.Point) (*models.IndoorObject, error) {
	if !c.editable() {
		return nil, nil
	}

	coord := c.opts.Grid.Coord(p, c.session.SnapEnabled())

	switch c.session.ActiveTool() {
	case "":
		c.selectAt(p)
		return nil, nil
	case models.Wall:
		return c.wallClick(coord)
	case models.Door:
		return c.doorClick(coord)
	case models.Stair:
		rect := geometry.RectPolygon(coord[0], coord[1], c.opts.StairHalfWidth, c.opts.StairHalfLength)
		return c.session.AddObject(models.Stair, rect, models.PropsPatch{})
	case models.Elevator:
		return c.session.AddObject(models.Elevator, coord, models.PropsPatch{})
	}
	return nil, nil
}

func (c *Controller) selectAt(p orb.Point) {
	hits := c.opts.HitTester.HitTest(p, c.session.CurrentObjects())
	if len(hits) > 0 {
		c.session.SelectObject(hits[0])
		return
	}
	c.session.SelectObject("")
}

// wallClick: первый клик запоминает начало, второй создаёт стену.
func (c *Controller) wallClick(coord orb.Point) (*models.IndoorObject, error) {
	if c.wallStart == nil {
		start := coord
		c.wallStart = &start
		c.preview = orb.LineString{start, coord}
		return nil, nil
	}

	line := orb.LineString{*c.wallStart, coord}
	c.cancelWall()
	return c.session.AddObject(models.Wall, line, models.PropsPatch{})
}

// doorClick привязывает дверь к ближайшей стене в пределах порога.
func (c *Controller) doorClick(coord orb.Point) (*models.IndoorObject, error) {
	bestDist := math.Inf(1)
	var bestNearest orb.Point
	var bestWallID string

	for _, obj := range c.session.CurrentObjects() {
		if obj.Type != models.Wall {
			continue
		}
		ls, ok := obj.Geometry.(orb.LineString)
		if !ok || len(ls) < 2 {
			continue
		}
		proj := geometry.PointToSegmentDistance(coord, ls[0], ls[1])
		if proj.Distance < bestDist {
			bestDist = proj.Distance
			bestNearest = proj.Nearest
			bestWallID = obj.ID
		}
	}

	if bestWallID == "" || bestDist > c.opts.DoorThreshold {
		c.session.ShowToast("Door must be placed on a wall")
		return nil, ErrNoWallNearby
	}

	return c.session.AddObject(models.Door, bestNearest, models.PropsPatch{WallID: models.String(bestWallID)})
}

// ============================================================
// Drag-move & preview
// ============================================================

// PointerDown starts dragging the selected object when the pointer hits it.
func (c *Controller) PointerDown(p orb.Point) bool {
	if !c.editable() || c.session.ActiveTool() != "" {
		return false
	}

	selected := c.session.SelectedObject()
	if selected == nil {
		return false
	}

	hit := false
	for _, id := range c.opts.HitTester.HitTest(p, c.session.CurrentObjects()) {
		if id == selected.ID {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	center := geometry.ObjectCenter(selected.Geometry)
	c.dragging = true
	c.dragID = selected.ID
	c.dragOffset = orb.Point{p[0] - center[0], p[1] - center[1]}
	if c.opts.Viewport != nil {
		c.opts.Viewport.SetDragPan(false)
	}
	return true
}

// PointerMove двигает перетаскиваемый объект или обновляет превью стены.
func (c *Controller) PointerMove(p orb.Point) {
	if !c.editable() {
		return
	}

	if c.dragging {
		c.dragTo(p)
		return
	}

	if c.session.ActiveTool() == models.Wall && c.wallStart != nil {
		coord := c.opts.Grid.Coord(p, c.session.SnapEnabled())
		c.preview = orb.LineString{*c.wallStart, coord}
	}
}

// PointerUp ends a drag in progress.
func (c *Controller) PointerUp(p orb.Point) {
	c.endDrag()
}

func (c *Controller) dragTo(p orb.Point) {
	obj := c.session.Object(c.dragID)
	if obj == nil {
		return
	}

	newCenter := c.opts.Grid.Coord(orb.Point{p[0] - c.dragOffset[0], p[1] - c.dragOffset[1]}, c.session.SnapEnabled())
	current := geometry.ObjectCenter(obj.Geometry)
	dx := newCenter[0] - current[0]
	dy := newCenter[1] - current[1]
	if dx == 0 && dy == 0 {
		return
	}

	c.session.UpdateObject(obj.ID, store.Update{Geometry: geometry.Translate(obj.Geometry, dx, dy)})
}
