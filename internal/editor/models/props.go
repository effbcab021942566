package models

// ============================================================
// Object Properties
// ============================================================

// Variant holds the fields that only make sense for one object type.
type Variant interface {
	ObjectType() ObjectType
}

type WallProps struct{}

type DoorProps struct {
	WallID string
}

type StairProps struct{}

type ElevatorProps struct{}

func (WallProps) ObjectType() ObjectType     { return Wall }
func (DoorProps) ObjectType() ObjectType     { return Door }
func (StairProps) ObjectType() ObjectType    { return Stair }
func (ElevatorProps) ObjectType() ObjectType { return Elevator }

// Props: общие свойства (поворот) плюс вариант конкретного типа.
type Props struct {
	Rotation float64
	Variant  Variant
}

// DefaultProps returns rotation 0 and the empty variant for t.
func DefaultProps(t ObjectType) Props {
	var v Variant
	switch t {
	case Wall:
		v = WallProps{}
	case Door:
		v = DoorProps{}
	case Stair:
		v = StairProps{}
	case Elevator:
		v = ElevatorProps{}
	}
	return Props{Variant: v}
}

// WallID возвращает стену, к которой привязана дверь ("" для остальных типов).
func (p Props) WallID() string {
	if d, ok := p.Variant.(DoorProps); ok {
		return d.WallID
	}
	return ""
}

// PropsPatch is a key-wise update: nil fields keep their current value.
type PropsPatch struct {
	Rotation *float64
	WallID   *string
}

func (p PropsPatch) IsEmpty() bool {
	return p.Rotation == nil && p.WallID == nil
}

// Merge применяет патч. wallId учитывается только у дверей.
func (p *Props) Merge(patch PropsPatch) {
	if patch.Rotation != nil {
		p.Rotation = *patch.Rotation
	}
	if patch.WallID != nil {
		if d, ok := p.Variant.(DoorProps); ok {
			d.WallID = *patch.WallID
			p.Variant = d
		}
	}
}

// Map renders the props in the export shape: rotation plus any variant keys.
func (p Props) Map() map[string]any {
	m := map[string]any{"rotation": p.Rotation}
	if d, ok := p.Variant.(DoorProps); ok && d.WallID != "" {
		m["wallId"] = d.WallID
	}
	return m
}

func Float(v float64) *float64 { return &v }

func String(v string) *string { return &v }
