package store

import (
	"errors"
	"log"

	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/undo"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

var (
	ErrNotInsideBuilding = errors.New("not inside a building")
	ErrFloorOutOfRange   = errors.New("floor index out of range")
	ErrInvalidGeometry   = errors.New("geometry does not match object type")
)

// ============================================================
// Session
// ============================================================

type Options struct {
	Levels          []models.FloorLevel
	DefaultFloorIdx int
	UndoCapacity    int
	NewID           func() string
}

// Session хранит состояние редактора одного пользователя: здание, этажи,
// объекты, выделение и журнал отмены. Не потокобезопасен.
type Session struct {
	levels          []models.FloorLevel
	defaultFloorIdx int
	newID           func() string

	buildingID     string
	footprint      orb.Geometry
	insideBuilding bool

	currentFloorIdx int
	floors          []*models.FloorData

	mode        models.Mode
	activeTool  models.ObjectType
	snapEnabled bool
	selectedID  string

	undo  *undo.Log
	toast string
}

func New(opts Options) *Session {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = models.DefaultFloorLevels()
	}
	defaultIdx := opts.DefaultFloorIdx
	if defaultIdx < 0 || defaultIdx >= len(levels) {
		defaultIdx = 0
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Session{
		levels:          append([]models.FloorLevel(nil), levels...),
		defaultFloorIdx: defaultIdx,
		newID:           newID,
		currentFloorIdx: defaultIdx,
		floors:          []*models.FloorData{},
		mode:            models.Browse,
		undo:            undo.NewLog(opts.UndoCapacity),
	}
}

// ============================================================
// Building lifecycle
// ============================================================

// EnterBuilding сбрасывает сессию и создаёт пустые этажи для всех уровней.
func (s *Session) EnterBuilding(id string, footprint orb.Geometry) {
	s.buildingID = id
	s.footprint = cloneGeometry(footprint)
	s.insideBuilding = true
	s.currentFloorIdx = s.defaultFloorIdx
	s.selectedID = ""
	s.undo.Clear()
	s.mode = models.Edit

	s.floors = make([]*models.FloorData, len(s.levels))
	for i, level := range s.levels {
		s.floors[i] = models.NewFloorData(level)
	}

	log.Printf("[STORE] Entered building %s (%d floors)", id, len(s.floors))
}

// ExitBuilding discards every floor and returns to browse mode.
func (s *Session) ExitBuilding() {
	if s.insideBuilding {
		log.Printf("[STORE] Exited building %s", s.buildingID)
	}
	s.buildingID = ""
	s.footprint = nil
	s.insideBuilding = false
	s.floors = []*models.FloorData{}
	s.selectedID = ""
	s.undo.Clear()
	s.mode = models.Browse
	s.activeTool = ""
}

// SetFloor переключает текущий этаж и снимает выделение.
// Журнал отмены не трогается.
func (s *Session) SetFloor(idx int) error {
	if idx < 0 || idx >= len(s.levels) {
		return ErrFloorOutOfRange
	}
	s.currentFloorIdx = idx
	s.selectedID = ""
	return nil
}

// SetFloorPolygon replaces the current floor outline. Not undoable.
func (s *Session) SetFloorPolygon(polygon orb.Polygon) {
	floor := s.currentFloor()
	if floor == nil {
		return
	}
	if polygon == nil {
		floor.FloorPolygon = nil
		return
	}
	floor.FloorPolygon = polygon.Clone()
}

// ============================================================
// Editing flags
// ============================================================

// SetMode switches mode; leaving edit mode drops the active tool.
func (s *Session) SetMode(mode models.Mode) {
	s.mode = mode
	if mode == models.Browse {
		s.activeTool = ""
	}
}

// SetTool выбирает инструмент; пустая строка: без инструмента.
func (s *Session) SetTool(tool models.ObjectType) {
	s.activeTool = tool
}

func (s *Session) SetSnapEnabled(enabled bool) {
	s.snapEnabled = enabled
}

func (s *Session) ShowToast(msg string) {
	s.toast = msg
}

func (s *Session) ClearToast() {
	s.toast = ""
}

// ============================================================
// Queries
// ============================================================

func (s *Session) BuildingID() string { return s.buildingID }

func (s *Session) Footprint() orb.Geometry { return cloneGeometry(s.footprint) }

func (s *Session) InsideBuilding() bool { return s.insideBuilding }

func (s *Session) CurrentFloorIdx() int { return s.currentFloorIdx }

func (s *Session) Mode() models.Mode { return s.mode }

func (s *Session) ActiveTool() models.ObjectType { return s.activeTool }

func (s *Session) SnapEnabled() bool { return s.snapEnabled }

func (s *Session) SelectedObjectID() string { return s.selectedID }

func (s *Session) Toast() string { return s.toast }

func (s *Session) UndoDepth() int { return s.undo.Len() }

func (s *Session) Levels() []models.FloorLevel {
	return append([]models.FloorLevel(nil), s.levels...)
}

// Floors возвращает глубокую копию всех этажей.
func (s *Session) Floors() []*models.FloorData {
	out := make([]*models.FloorData, len(s.floors))
	for i, f := range s.floors {
		out[i] = f.Clone()
	}
	return out
}

// CurrentFloor returns a copy of the displayed floor, or nil outside a building.
func (s *Session) CurrentFloor() *models.FloorData {
	return s.currentFloor().Clone()
}

// CurrentObjects returns copies of the displayed floor's objects in z-order.
func (s *Session) CurrentObjects() []*models.IndoorObject {
	floor := s.currentFloor()
	if floor == nil {
		return []*models.IndoorObject{}
	}
	return models.CloneObjects(floor.Objects)
}

// SelectedObject returns the selected object on the current floor, or nil.
func (s *Session) SelectedObject() *models.IndoorObject {
	if s.selectedID == "" {
		return nil
	}
	return s.Object(s.selectedID)
}

// Object looks an object up by id on the current floor.
func (s *Session) Object(id string) *models.IndoorObject {
	floor := s.currentFloor()
	if floor == nil {
		return nil
	}
	if i := floor.IndexOf(id); i >= 0 {
		return floor.Objects[i].Clone()
	}
	return nil
}

func (s *Session) currentFloor() *models.FloorData {
	if s.currentFloorIdx < 0 || s.currentFloorIdx >= len(s.floors) {
		return nil
	}
	return s.floors[s.currentFloorIdx]
}

func cloneGeometry(g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	return orb.Clone(g)
}
