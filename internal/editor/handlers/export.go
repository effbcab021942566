package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"indoor-editor/internal/editor/export"
	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Export
// ============================================================

// Export отдаёт снимок всех этажей как JSON-файл.
func (h *EditorHandler) Export(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		s := ctrl.Session()
		payload := export.BuildPayload(s.BuildingID(), s.Floors())

		data, err := export.Encode(payload)
		if err != nil {
			log.Printf("[EXPORT] Encode error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		c.Set("Content-Type", "application/json")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(payload)))
		return c.Send(data)
	})
}

// SaveExport сохраняет снимок в sqlite.
func (h *EditorHandler) SaveExport(c fiber.Ctx) error {
	if h.exports == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "persistence disabled"})
	}

	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		s := ctrl.Session()
		if !s.InsideBuilding() {
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "not inside a building"})
		}

		data, err := export.Encode(export.BuildPayload(s.BuildingID(), s.Floors()))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		saved, err := h.exports.Save(c.Context(), s.BuildingID(), data)
		if err != nil {
			log.Printf("[EXPORT] Save error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save export"})
		}

		log.Printf("[EXPORT] Saved %s for building %s", saved.ID, saved.BuildingID)
		return c.Status(http.StatusCreated).JSON(saved)
	})
}

// FloorSVG рисует текущий этаж.
func (h *EditorHandler) FloorSVG(c fiber.Ctx) error {
	return h.withWorkspace(c, func(id string, ctrl *interaction.Controller) error {
		s := ctrl.Session()
		floor := s.CurrentFloor()
		if floor == nil {
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "not inside a building"})
		}

		svg, err := export.NewRenderer(s.SelectedObjectID()).Render(floor)
		if err != nil {
			log.Printf("[EXPORT] Render error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		c.Set("Content-Type", "image/svg+xml")
		return c.SendString(svg)
	})
}

// LatestExport returns the most recent persisted export of a building.
func (h *EditorHandler) LatestExport(c fiber.Ctx) error {
	if h.exports == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "persistence disabled"})
	}

	saved, err := h.exports.Latest(c.Context(), c.Params("buildingId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "export not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load export"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(saved.Payload)
}

func (h *EditorHandler) ExportHistory(c fiber.Ctx) error {
	if h.exports == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "persistence disabled"})
	}

	list, err := h.exports.List(c.Context(), c.Params("buildingId"))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list exports"})
	}
	if list == nil {
		list = []*repository.Export{}
	}
	return c.JSON(fiber.Map{"exports": list})
}
