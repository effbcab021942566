package handlers

import (
	"encoding/json"
	"net/http"

	"indoor-editor/internal/editor/export"
	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/store"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Objects
// ============================================================

type objectRequest struct {
	Type     string          `json:"type"`
	Geometry json.RawMessage `json:"geometry"`
	Rotation *float64        `json:"rotation"`
	WallID   *string         `json:"wallId"`
}

func (r objectRequest) patch() models.PropsPatch {
	return models.PropsPatch{Rotation: r.Rotation, WallID: r.WallID}
}

// ListObjects возвращает объекты текущего этажа в порядке отрисовки.
func (h *EditorHandler) ListObjects(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		return c.JSON(fiber.Map{"objects": objectPayloads(ctrl.Session().CurrentObjects())})
	})
}

func (h *EditorHandler) CreateObject(c fiber.Ctx) error {
	var req objectRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	t, ok := models.ParseObjectType(req.Type)
	if !ok {
		return badRequest(c, "unknown object type")
	}
	geom, err := parseGeometry(req.Geometry)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if geom == nil {
		return badRequest(c, "geometry required")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		obj, err := ctrl.Session().AddObject(t, geom, req.patch())
		if err != nil {
			return editorError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(export.NewObjectPayload(obj))
	})
}

// UpdateObject заменяет геометрию (если передана) и сливает свойства.
func (h *EditorHandler) UpdateObject(c fiber.Ctx) error {
	var req objectRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	geom, err := parseGeometry(req.Geometry)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		s := ctrl.Session()
		oid := c.Params("oid")

		obj := s.Object(oid)
		if obj == nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
		}
		if geom != nil {
			if err := store.ValidateGeometry(obj.Type, geom); err != nil {
				return editorError(c, err)
			}
		}

		s.UpdateObject(oid, store.Update{Geometry: geom, Props: req.patch()})
		return c.JSON(export.NewObjectPayload(s.Object(oid)))
	})
}

func (h *EditorHandler) DeleteObject(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		if !ctrl.Session().RemoveObject(c.Params("oid")) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

// Select выделяет объект текущего этажа; пустой id снимает выделение.
func (h *EditorHandler) Select(c fiber.Ctx) error {
	var req struct {
		ID string `json:"id"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		s := ctrl.Session()
		if req.ID != "" && s.Object(req.ID) == nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
		}
		s.SelectObject(req.ID)
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) Undo(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		undone := ctrl.Session().Undo()
		return c.JSON(fiber.Map{"undone": undone, "state": newState(id, ctrl)})
	})
}
