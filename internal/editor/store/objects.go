package store

import (
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/undo"

	"github.com/paulmach/orb"
)

// ============================================================
// Object mutations
// ============================================================

// Update describes an in-place change: Geometry replaces the shape
// wholesale, Props is merged key-wise.
type Update struct {
	Geometry orb.Geometry
	Props    models.PropsPatch
}

// AddObject создаёт объект на текущем этаже. Запись отмены кладётся
// до изменения.
func (s *Session) AddObject(t models.ObjectType, g orb.Geometry, patch models.PropsPatch) (*models.IndoorObject, error) {
	floor := s.currentFloor()
	if floor == nil {
		return nil, ErrNotInsideBuilding
	}
	if err := ValidateGeometry(t, g); err != nil {
		return nil, err
	}

	props := models.DefaultProps(t)
	props.Merge(patch)

	obj := &models.IndoorObject{
		ID:       s.newID(),
		Type:     t,
		Geometry: orb.Clone(g),
		Props:    props,
	}

	s.pushUndo()
	floor.Objects = append(floor.Objects, obj)
	return obj.Clone(), nil
}

// RemoveObject deletes id from the current floor. Unknown ids are a no-op.
func (s *Session) RemoveObject(id string) bool {
	floor := s.currentFloor()
	if floor == nil {
		return false
	}
	i := floor.IndexOf(id)
	if i < 0 {
		return false
	}

	s.pushUndo()
	floor.Objects = append(floor.Objects[:i:i], floor.Objects[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
	return true
}

// UpdateObject применяет изменение к объекту текущего этажа.
// Неизвестный id: no-op без записи отмены.
func (s *Session) UpdateObject(id string, u Update) bool {
	floor := s.currentFloor()
	if floor == nil {
		return false
	}
	i := floor.IndexOf(id)
	if i < 0 {
		return false
	}

	s.pushUndo()
	obj := floor.Objects[i]
	if u.Geometry != nil {
		obj.Geometry = orb.Clone(u.Geometry)
	}
	obj.Props.Merge(u.Props)
	return true
}

// SelectObject sets the selection without validating id; "" clears it.
func (s *Session) SelectObject(id string) {
	s.selectedID = id
}

// ============================================================
// Undo
// ============================================================

// Undo восстанавливает этаж из последней записи, независимо от того,
// какой этаж сейчас отображается.
func (s *Session) Undo() bool {
	entry, ok := s.undo.Pop()
	if !ok {
		return false
	}
	if entry.FloorIdx >= 0 && entry.FloorIdx < len(s.floors) {
		s.floors[entry.FloorIdx].Objects = entry.Snapshot
	}
	s.selectedID = ""
	return true
}

func (s *Session) pushUndo() {
	floor := s.floors[s.currentFloorIdx]
	s.undo.Push(undo.Entry{
		FloorIdx: s.currentFloorIdx,
		Snapshot: models.CloneObjects(floor.Objects),
	})
}

// ValidateGeometry reports ErrInvalidGeometry when g is not a shape t can have.
func ValidateGeometry(t models.ObjectType, g orb.Geometry) error {
	switch geom := g.(type) {
	case orb.Point:
		if t == models.Door || t == models.Elevator {
			return nil
		}
	case orb.LineString:
		if t == models.Wall && len(geom) == 2 {
			return nil
		}
	case orb.Polygon:
		if t == models.Stair && len(geom) > 0 && len(geom[0]) >= 4 {
			return nil
		}
	}
	return ErrInvalidGeometry
}
