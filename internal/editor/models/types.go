package models

import (
	"github.com/paulmach/orb"
)

// ============================================================
// Object Types
// ============================================================

type ObjectType string

const (
	Wall     ObjectType = "Wall"
	Door     ObjectType = "Door"
	Stair    ObjectType = "Stair"
	Elevator ObjectType = "Elevator"
)

var ObjectTypes = []ObjectType{Wall, Door, Stair, Elevator}

// ParseObjectType принимает имя типа в том виде, в каком оно экспортируется.
func ParseObjectType(s string) (ObjectType, bool) {
	for _, t := range ObjectTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ============================================================
// Modes
// ============================================================

type Mode string

const (
	Browse Mode = "browse"
	Edit   Mode = "edit"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Browse, Edit:
		return Mode(s), true
	}
	return "", false
}

// ============================================================
// Floors
// ============================================================

// FloorLevel описывает один из заранее настроенных этажей здания.
type FloorLevel struct {
	Index     string  `yaml:"index" json:"index"`
	Elevation float64 `yaml:"elevation" json:"elevation"`
	Label     string  `yaml:"label" json:"label"`
}

// DefaultFloorLevels is B2, B1, 1F, 2F with 4 m between slabs.
func DefaultFloorLevels() []FloorLevel {
	return []FloorLevel{
		{Index: "B2", Elevation: -8, Label: "B2"},
		{Index: "B1", Elevation: -4, Label: "B1"},
		{Index: "1F", Elevation: 0, Label: "1F"},
		{Index: "2F", Elevation: 4, Label: "2F"},
	}
}

// DefaultFloorIdx points at 1F in DefaultFloorLevels.
const DefaultFloorIdx = 2

type FloorData struct {
	FloorIndex   string
	Elevation    float64
	FloorPolygon orb.Polygon
	Objects      []*IndoorObject
}

func NewFloorData(level FloorLevel) *FloorData {
	return &FloorData{
		FloorIndex: level.Index,
		Elevation:  level.Elevation,
		Objects:    []*IndoorObject{},
	}
}

// Clone возвращает глубокую копию этажа.
func (f *FloorData) Clone() *FloorData {
	if f == nil {
		return nil
	}
	c := &FloorData{
		FloorIndex: f.FloorIndex,
		Elevation:  f.Elevation,
		Objects:    CloneObjects(f.Objects),
	}
	if f.FloorPolygon != nil {
		c.FloorPolygon = f.FloorPolygon.Clone()
	}
	return c
}

// IndexOf returns the position of the object with the given id, or -1.
func (f *FloorData) IndexOf(id string) int {
	for i, o := range f.Objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// ============================================================
// Indoor Object
// ============================================================

type IndoorObject struct {
	ID       string
	Type     ObjectType
	Geometry orb.Geometry
	Props    Props
}

func (o *IndoorObject) Clone() *IndoorObject {
	if o == nil {
		return nil
	}
	c := *o
	if o.Geometry != nil {
		c.Geometry = orb.Clone(o.Geometry)
	}
	return &c
}

// CloneObjects копирует слайс объектов вместе с геометрией.
func CloneObjects(objects []*IndoorObject) []*IndoorObject {
	out := make([]*IndoorObject, len(objects))
	for i, o := range objects {
		out[i] = o.Clone()
	}
	return out
}
