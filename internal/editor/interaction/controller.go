package interaction

import (
	"errors"
	"log"

	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/snap"
	"indoor-editor/internal/editor/store"

	"github.com/paulmach/orb"
)

// ErrNoWallNearby is returned when a door click is not close enough to any wall.
var ErrNoWallNearby = errors.New("door must be placed on a wall")

const (
	DefaultDoorThreshold   = 0.0001  // ~10 m
	DefaultStairHalfWidth  = 0.00003 // ~3 m
	DefaultStairHalfLength = 0.00005 // ~5 m
	DefaultHitTolerance    = 0.00002
)

// Viewport is the map collaborator whose panning is suspended while dragging.
type Viewport interface {
	SetDragPan(enabled bool)
}

type Options struct {
	Grid            snap.Grid
	DoorThreshold   float64
	StairHalfWidth  float64
	StairHalfLength float64
	Fallback        Fallback
	HitTester       HitTester
	Viewport        Viewport
}

func DefaultOptions() Options {
	return Options{
		Grid:            snap.NewGrid(snap.DefaultInterval),
		DoorThreshold:   DefaultDoorThreshold,
		StairHalfWidth:  DefaultStairHalfWidth,
		StairHalfLength: DefaultStairHalfLength,
		Fallback:        DefaultFallback(),
		HitTester:       GeometryHitTester{Tolerance: DefaultHitTolerance},
	}
}

// ============================================================
// Controller
// ============================================================

// Controller переводит события указателя и клавиатуры в операции
// store.Session. Хранит только состояние текущего жеста.
type Controller struct {
	session *store.Session
	opts    Options

	// двухкликовая стена
	wallStart *orb.Point
	preview   orb.LineString

	// перетаскивание
	dragging   bool
	dragID     string
	dragOffset orb.Point
}

func NewController(session *store.Session, opts Options) *Controller {
	defaults := DefaultOptions()
	if opts.Grid.Interval <= 0 {
		opts.Grid = defaults.Grid
	}
	if opts.DoorThreshold <= 0 {
		opts.DoorThreshold = defaults.DoorThreshold
	}
	if opts.StairHalfWidth <= 0 {
		opts.StairHalfWidth = defaults.StairHalfWidth
	}
	if opts.StairHalfLength <= 0 {
		opts.StairHalfLength = defaults.StairHalfLength
	}
	if opts.Fallback.HalfWidth <= 0 || opts.Fallback.HalfHeight <= 0 {
		opts.Fallback = defaults.Fallback
	}
	if opts.HitTester == nil {
		opts.HitTester = defaults.HitTester
	}
	return &Controller{session: session, opts: opts}
}

func (c *Controller) Session() *store.Session { return c.session }

// ============================================================
// Building & floor lifecycle
// ============================================================

// EnterBuilding resets the session for a new building and derives the
// floor outline of the default floor from the footprint.
func (c *Controller) EnterBuilding(id string, footprint orb.Geometry) {
	c.resetGestures()
	c.session.EnterBuilding(id, footprint)
	c.session.SetFloorPolygon(FloorPolygon(footprint, c.opts.Fallback))
}

func (c *Controller) ExitBuilding() {
	c.resetGestures()
	c.session.ExitBuilding()
}

// SetFloor переключает этаж и заново строит контур этажа.
func (c *Controller) SetFloor(idx int) error {
	if err := c.session.SetFloor(idx); err != nil {
		return err
	}
	c.resetGestures()
	c.RegenerateFloorPolygon()
	return nil
}

// RegenerateFloorPolygon rebuilds the current floor outline from the stored footprint.
func (c *Controller) RegenerateFloorPolygon() {
	if !c.session.InsideBuilding() {
		return
	}
	fp := c.session.Footprint()
	if fp == nil {
		return
	}
	c.session.SetFloorPolygon(FloorPolygon(fp, c.opts.Fallback))
}

func (c *Controller) SetTool(tool models.ObjectType) {
	c.cancelWall()
	c.session.SetTool(tool)
}

func (c *Controller) SetMode(mode models.Mode) {
	c.resetGestures()
	c.session.SetMode(mode)
}

// ============================================================
// Keyboard
// ============================================================

const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyUndo      = "Undo"
)

// Key handles a keyboard shortcut and reports whether it had an effect.
func (c *Controller) Key(key string) bool {
	switch key {
	case KeyUndo:
		return c.session.Undo()
	case KeyDelete, KeyBackspace:
		selected := c.session.SelectedObject()
		if selected == nil {
			return false
		}
		return c.session.RemoveObject(selected.ID)
	case KeyEscape:
		c.Escape()
		c.session.SelectObject("")
		c.session.SetTool("")
		return true
	}
	return false
}

// Escape cancels a pending wall without committing it.
func (c *Controller) Escape() {
	c.cancelWall()
}

// ============================================================
// Gesture state
// ============================================================

// Preview returns the live wall segment while the first point is pending.
func (c *Controller) Preview() (orb.LineString, bool) {
	if c.wallStart == nil || c.preview == nil {
		return nil, false
	}
	return c.preview.Clone(), true
}

func (c *Controller) Dragging() bool { return c.dragging }

func (c *Controller) editable() bool {
	return c.session.InsideBuilding() && c.session.Mode() == models.Edit
}

func (c *Controller) cancelWall() {
	c.wallStart = nil
	c.preview = nil
}

func (c *Controller) resetGestures() {
	c.cancelWall()
	c.endDrag()
}

func (c *Controller) endDrag() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.dragID = ""
	c.dragOffset = orb.Point{}
	if c.opts.Viewport != nil {
		c.opts.Viewport.SetDragPan(true)
	}
	log.Printf("[EDITOR] Drag finished")
}
