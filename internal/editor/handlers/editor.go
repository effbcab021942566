package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/repository"
	"indoor-editor/internal/editor/service"
	"indoor-editor/internal/editor/store"

	"github.com/gofiber/fiber/v3"
)

// ExportStore persists building exports.
type ExportStore interface {
	Save(ctx context.Context, buildingID string, payload []byte) (*repository.Export, error)
	Latest(ctx context.Context, buildingID string) (*repository.Export, error)
	List(ctx context.Context, buildingID string) ([]*repository.Export, error)
}

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions *service.SessionManager
	exports  ExportStore
}

// NewEditorHandler wires the HTTP surface. exports may be nil, in which
// case persistence routes answer 503.
func NewEditorHandler(sessions *service.SessionManager, exports ExportStore) *EditorHandler {
	return &EditorHandler{sessions: sessions, exports: exports}
}

func (h *EditorHandler) Register(r fiber.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/:id", h.GetSession)
	r.Delete("/sessions/:id", h.DeleteSession)

	r.Post("/sessions/:id/building", h.EnterBuilding)
	r.Delete("/sessions/:id/building", h.ExitBuilding)

	r.Put("/sessions/:id/floor", h.SetFloor)
	r.Put("/sessions/:id/mode", h.SetMode)
	r.Put("/sessions/:id/tool", h.SetTool)
	r.Put("/sessions/:id/snap", h.SetSnap)
	r.Delete("/sessions/:id/toast", h.ClearToast)

	r.Get("/sessions/:id/objects", h.ListObjects)
	r.Post("/sessions/:id/objects", h.CreateObject)
	r.Patch("/sessions/:id/objects/:oid", h.UpdateObject)
	r.Delete("/sessions/:id/objects/:oid", h.DeleteObject)
	r.Put("/sessions/:id/selection", h.Select)
	r.Post("/sessions/:id/undo", h.Undo)

	r.Post("/sessions/:id/pointer", h.Pointer)
	r.Post("/sessions/:id/keys", h.Key)
	r.Post("/sessions/:id/rotate", h.Rotate)

	r.Get("/sessions/:id/export", h.Export)
	r.Post("/sessions/:id/export", h.SaveExport)
	r.Get("/sessions/:id/floor.svg", h.FloorSVG)
	r.Get("/exports/:buildingId", h.LatestExport)
	r.Get("/exports/:buildingId/history", h.ExportHistory)
}

// ============================================================
// Sessions
// ============================================================

// CreateSession открывает новую сессию редактора.
func (h *EditorHandler) CreateSession(c fiber.Ctx) error {
	w := h.sessions.Issue()
	return w.Do(func(ctrl *interaction.Controller) error {
		return c.Status(http.StatusCreated).JSON(newState(w.ID, ctrl))
	})
}

func (h *EditorHandler) GetSession(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Close(c.Params("id")) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Building lifecycle
// ============================================================

type enterBuildingRequest struct {
	BuildingID string          `json:"buildingId"`
	Footprint  json.RawMessage `json:"footprint"`
}

// EnterBuilding принимает контур здания в GeoJSON (geometry или feature).
func (h *EditorHandler) EnterBuilding(c fiber.Ctx) error {
	var req enterBuildingRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.BuildingID == "" {
		return badRequest(c, "buildingId required")
	}

	footprint, err := parseGeometry(req.Footprint)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.EnterBuilding(req.BuildingID, footprint)
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) ExitBuilding(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.ExitBuilding()
		return c.JSON(newState(id, ctrl))
	})
}

// ============================================================
// Editing flags
// ============================================================

func (h *EditorHandler) SetFloor(c fiber.Ctx) error {
	var req struct {
		Index *int `json:"index"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Index == nil {
		return badRequest(c, "index required")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		if err := ctrl.SetFloor(*req.Index); err != nil {
			return editorError(c, err)
		}
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) SetMode(c fiber.Ctx) error {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	mode, ok := models.ParseMode(req.Mode)
	if !ok {
		return badRequest(c, "mode must be browse or edit")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.SetMode(mode)
		return c.JSON(newState(id, ctrl))
	})
}

// SetTool выбирает инструмент; пустая строка или null снимают его.
func (h *EditorHandler) SetTool(c fiber.Ctx) error {
	var req struct {
		Tool string `json:"tool"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	var tool models.ObjectType
	if req.Tool != "" {
		t, ok := models.ParseObjectType(req.Tool)
		if !ok {
			return badRequest(c, "unknown tool")
		}
		tool = t
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.SetTool(tool)
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) SetSnap(c fiber.Ctx) error {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Enabled == nil {
		return badRequest(c, "enabled required")
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.Session().SetSnapEnabled(*req.Enabled)
		return c.JSON(newState(id, ctrl))
	})
}

func (h *EditorHandler) ClearToast(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		ctrl.Session().ClearToast()
		return c.JSON(newState(id, ctrl))
	})
}

// ============================================================
// Helpers
// ============================================================

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json")
)

func (h *EditorHandler) withWorkspace(c fiber.Ctx, fn func(id string, ctrl *interaction.Controller) error) error {
	w, ok := h.sessions.Resolve(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return w.Do(func(ctrl *interaction.Controller) error {
		return fn(w.ID, ctrl)
	})
}

func bind(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func editorError(c fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotInsideBuilding):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidGeometry), errors.Is(err, store.ErrFloorOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, interaction.ErrNoWallNearby):
		status = http.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
