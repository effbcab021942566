package handlers

import (
	"errors"
	"net/http"

	"indoor-editor/internal/editor/export"
	"indoor-editor/internal/editor/interaction"

	"github.com/gofiber/fiber/v3"
	"github.com/paulmach/orb"
)

// ============================================================
// Pointer & keyboard
// ============================================================

type pointerRequest struct {
	Event string   `json:"event"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

// Pointer прокидывает событие указателя (click/down/move/up) в контроллер.
func (h *EditorHandler) Pointer(c fiber.Ctx) error {
	var req pointerRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.X == nil || req.Y == nil {
		return badRequest(c, "x and y required")
	}
	p := orb.Point{*req.X, *req.Y}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		resp := fiber.Map{}

		switch req.Event {
		case "click":
			obj, err := ctrl.Click(p)
			if errors.Is(err, interaction.ErrNoWallNearby) {
				return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
					"error": err.Error(),
					"state": newState(id, ctrl),
				})
			}
			if err != nil {
				return editorError(c, err)
			}
			if obj != nil {
				resp["object"] = export.NewObjectPayload(obj)
			}
		case "down":
			resp["dragging"] = ctrl.PointerDown(p)
		case "move":
			ctrl.PointerMove(p)
		case "up":
			ctrl.PointerUp(p)
		default:
			return badRequest(c, "event must be click, down, move or up")
		}

		resp["state"] = newState(id, ctrl)
		return c.JSON(resp)
	})
}

func (h *EditorHandler) Key(c fiber.Ctx) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Key == "" {
		return badRequest(c, "key required")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		handled := ctrl.Key(req.Key)
		return c.JSON(fiber.Map{"handled": handled, "state": newState(id, ctrl)})
	})
}

// Rotate поворачивает выделенный объект до абсолютного угла в градусах.
func (h *EditorHandler) Rotate(c fiber.Ctx) error {
	var req struct {
		Angle *float64 `json:"angle"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Angle == nil {
		return badRequest(c, "angle required")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		rotated := ctrl.RotateSelectedTo(*req.Angle)
		return c.JSON(fiber.Map{"rotated": rotated, "state": newState(id, ctrl)})
	})
}
