package export

import (
	"encoding/json"
	"fmt"

	"indoor-editor/internal/editor/models"

	"github.com/paulmach/orb/geojson"
)

// ============================================================
// Export payload
// ============================================================

// Payload: каноничный формат выгрузки здания.
type Payload struct {
	BuildingID *string        `json:"buildingId"`
	Floors     []FloorPayload `json:"floors"`
}

type FloorPayload struct {
	FloorIndex string          `json:"floorIndex"`
	Elevation  float64         `json:"elevation"`
	Objects    []ObjectPayload `json:"objects"`
}

type ObjectPayload struct {
	ID       string            `json:"id"`
	Type     models.ObjectType `json:"type"`
	Geometry *geojson.Geometry `json:"geometry"`
	Props    map[string]any    `json:"props"`
}

// BuildPayload snapshots floors into the export shape. The result shares
// no memory with the input.
func BuildPayload(buildingID string, floors []*models.FloorData) *Payload {
	p := &Payload{Floors: make([]FloorPayload, 0, len(floors))}
	if buildingID != "" {
		id := buildingID
		p.BuildingID = &id
	}

	for _, f := range floors {
		fp := FloorPayload{
			FloorIndex: f.FloorIndex,
			Elevation:  f.Elevation,
			Objects:    make([]ObjectPayload, 0, len(f.Objects)),
		}
		for _, o := range f.Objects {
			fp.Objects = append(fp.Objects, NewObjectPayload(o))
		}
		p.Floors = append(p.Floors, fp)
	}

	return p
}

// NewObjectPayload converts a single object, copying its geometry.
func NewObjectPayload(o *models.IndoorObject) ObjectPayload {
	c := o.Clone()
	return ObjectPayload{
		ID:       c.ID,
		Type:     c.Type,
		Geometry: geojson.NewGeometry(c.Geometry),
		Props:    c.Props.Map(),
	}
}

// Encode сериализует payload с отступом в два пробела.
func Encode(p *Payload) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &p, nil
}

// FileName is the download name used for a building export.
func FileName(p *Payload) string {
	id := "unknown"
	if p.BuildingID != nil && *p.BuildingID != "" {
		id = *p.BuildingID
	}
	return fmt.Sprintf("indoor-map-%s.json", id)
}
