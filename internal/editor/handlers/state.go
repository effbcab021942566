package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"indoor-editor/internal/editor/export"
	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ============================================================
// Responses
// ============================================================

type stateResponse struct {
	ID               string              `json:"id"`
	BuildingID       string              `json:"buildingId,omitempty"`
	InsideBuilding   bool                `json:"insideBuilding"`
	CurrentFloorIdx  int                 `json:"currentFloorIdx"`
	Levels           []models.FloorLevel `json:"levels"`
	Floor            *floorResponse      `json:"floor,omitempty"`
	Mode             models.Mode         `json:"mode"`
	ActiveTool       models.ObjectType   `json:"activeTool,omitempty"`
	SnapEnabled      bool                `json:"snapEnabled"`
	SelectedObjectID string              `json:"selectedObjectId,omitempty"`
	Toast            string              `json:"toast,omitempty"`
	UndoDepth        int                 `json:"undoDepth"`
	Dragging         bool                `json:"dragging"`
	Preview          *geojson.Geometry   `json:"preview,omitempty"`
}

type floorResponse struct {
	FloorIndex   string                 `json:"floorIndex"`
	Elevation    float64                `json:"elevation"`
	FloorPolygon *geojson.Geometry      `json:"floorPolygon,omitempty"`
	Objects      []export.ObjectPayload `json:"objects"`
}

func newState(id string, ctrl *interaction.Controller) stateResponse {
	s := ctrl.Session()
	resp := stateResponse{
		ID:               id,
		BuildingID:       s.BuildingID(),
		InsideBuilding:   s.InsideBuilding(),
		CurrentFloorIdx:  s.CurrentFloorIdx(),
		Levels:           s.Levels(),
		Mode:             s.Mode(),
		ActiveTool:       s.ActiveTool(),
		SnapEnabled:      s.SnapEnabled(),
		SelectedObjectID: s.SelectedObjectID(),
		Toast:            s.Toast(),
		UndoDepth:        s.UndoDepth(),
		Dragging:         ctrl.Dragging(),
	}

	if floor := s.CurrentFloor(); floor != nil {
		resp.Floor = newFloorResponse(floor)
	}
	if preview, ok := ctrl.Preview(); ok {
		resp.Preview = geojson.NewGeometry(preview)
	}
	return resp
}

func newFloorResponse(floor *models.FloorData) *floorResponse {
	fr := &floorResponse{
		FloorIndex: floor.FloorIndex,
		Elevation:  floor.Elevation,
		Objects:    objectPayloads(floor.Objects),
	}
	if floor.FloorPolygon != nil {
		fr.FloorPolygon = geojson.NewGeometry(floor.FloorPolygon)
	}
	return fr
}

func objectPayloads(objects []*models.IndoorObject) []export.ObjectPayload {
	out := make([]export.ObjectPayload, 0, len(objects))
	for _, o := range objects {
		out = append(out, export.NewObjectPayload(o))
	}
	return out
}

// ============================================================
// GeoJSON input
// ============================================================

// parseGeometry принимает GeoJSON geometry или Feature. Пустое значение
// и null дают nil.
func parseGeometry(raw json.RawMessage) (orb.Geometry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}

	if probe.Type == "Feature" {
		f, err := geojson.UnmarshalFeature(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid geojson feature: %w", err)
		}
		return f.Geometry, nil
	}

	g, err := geojson.UnmarshalGeometry(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid geojson geometry: %w", err)
	}
	return g.Geometry(), nil
}
