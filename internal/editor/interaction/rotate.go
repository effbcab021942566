package interaction

import (
	"math"

	"indoor-editor/internal/editor/geometry"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/store"
)

// RotateSelectedTo поворачивает выделенный объект до абсолютного угла.
// Стены вращаются вокруг середины, лестницы вокруг центроида,
// у точечных объектов меняется только свойство rotation.
func (c *Controller) RotateSelectedTo(target float64) bool {
	obj := c.session.SelectedObject()
	if obj == nil {
		return false
	}

	target = NormalizeAngle(target)
	delta := target - obj.Props.Rotation
	if delta == 0 {
		return false
	}

	update := store.Update{Props: models.PropsPatch{Rotation: models.Float(target)}}

	switch obj.Props.Variant.(type) {
	case models.WallProps, models.StairProps:
		center := geometry.ObjectCenter(obj.Geometry)
		update.Geometry = geometry.Rotate(obj.Geometry, center, delta)
	case models.DoorProps, models.ElevatorProps:
		// точка остаётся на месте
	}

	return c.session.UpdateObject(obj.ID, update)
}

// NormalizeAngle maps any angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
