package export

import (
	"encoding/json"
	"strings"
	"testing"

	"indoor-editor/internal/editor/models"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFloors() []*models.FloorData {
	floors := make([]*models.FloorData, 0, 4)
	for _, level := range models.DefaultFloorLevels() {
		floors = append(floors, models.NewFloorData(level))
	}

	door := &models.IndoorObject{
		ID:       "door-1",
		Type:     models.Door,
		Geometry: orb.Point{1, 0},
		Props:    models.DefaultProps(models.Door),
	}
	door.Props.Merge(models.PropsPatch{WallID: models.String("wall-1")})

	floors[2].FloorPolygon = orb.Polygon{{{0, 0}, {2, 0}, {2, 1}, {0, 1}, {0, 0}}}
	floors[2].Objects = []*models.IndoorObject{
		{ID: "wall-1", Type: models.Wall, Geometry: orb.LineString{{0, 0}, {2, 0}}, Props: models.DefaultProps(models.Wall)},
		door,
		{ID: "elev-1", Type: models.Elevator, Geometry: orb.Point{1.5, 0.5}, Props: models.Props{Rotation: 90, Variant: models.ElevatorProps{}}},
	}
	return floors
}

func TestBuildPayload_Shape(t *testing.T) {
	p := BuildPayload("bldg-7", sampleFloors())

	require.NotNil(t, p.BuildingID)
	assert.Equal(t, "bldg-7", *p.BuildingID)
	require.Len(t, p.Floors, 4)
	assert.Equal(t, "B2", p.Floors[0].FloorIndex)
	assert.Equal(t, -8.0, p.Floors[0].Elevation)
	assert.Empty(t, p.Floors[0].Objects)

	objs := p.Floors[2].Objects
	require.Len(t, objs, 3)
	assert.Equal(t, "wall-1", objs[0].ID)
	assert.Equal(t, models.Wall, objs[0].Type)
	assert.Equal(t, "LineString", objs[0].Geometry.Type)
	assert.Equal(t, map[string]any{"rotation": 0.0}, objs[0].Props)
	assert.Equal(t, map[string]any{"rotation": 0.0, "wallId": "wall-1"}, objs[1].Props)
	assert.Equal(t, 90.0, objs[2].Props["rotation"])
}

func TestBuildPayload_NoBuilding(t *testing.T) {
	p := BuildPayload("", nil)

	assert.Nil(t, p.BuildingID)
	assert.NotNil(t, p.Floors)
	assert.Equal(t, "indoor-map-unknown.json", FileName(p))

	data, err := Encode(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"buildingId": null`)
	assert.Contains(t, string(data), `"floors": []`)
}

func TestBuildPayload_DoesNotAliasInput(t *testing.T) {
	floors := sampleFloors()
	p := BuildPayload("bldg-7", floors)

	floors[2].Objects[0].Geometry.(orb.LineString)[0] = orb.Point{9, 9}
	floors[2].Objects = floors[2].Objects[:1]

	require.Len(t, p.Floors[2].Objects, 3)
	ls := p.Floors[2].Objects[0].Geometry.Geometry().(orb.LineString)
	assert.Equal(t, orb.Point{0, 0}, ls[0])
}

func TestEncode_Format(t *testing.T) {
	data, err := Encode(BuildPayload("bldg-7", sampleFloors()))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n  \"buildingId\": \"bldg-7\""))
	assert.Contains(t, text, `"floorIndex": "1F"`)
	assert.Contains(t, text, `"type": "Door"`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	floors := generic["floors"].([]any)
	floor := floors[2].(map[string]any)
	obj := floor["objects"].([]any)[1].(map[string]any)
	geom := obj["geometry"].(map[string]any)
	assert.Equal(t, "Point", geom["type"])
	assert.Equal(t, []any{1.0, 0.0}, geom["coordinates"])
}

func TestDecode_RoundTrip(t *testing.T) {
	data, err := Encode(BuildPayload("bldg-7", sampleFloors()))
	require.NoError(t, err)

	p, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "indoor-map-bldg-7.json", FileName(p))
	require.Len(t, p.Floors[2].Objects, 3)
	assert.Equal(t, orb.Point{1, 0}, p.Floors[2].Objects[1].Geometry.Geometry())

	_, err = Decode([]byte("{"))
	assert.Error(t, err)
}

func TestRender_Floor(t *testing.T) {
	floors := sampleFloors()
	svg, err := NewRenderer("wall-1").Render(floors[2])
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, `viewBox="0 0 1000 500"`)
	assert.Contains(t, svg, `<path id="floor-1F" d="M 0 500 L 1000 500 L 1000 0 L 0 0 Z"`)
	assert.Contains(t, svg, `<line id="wall-1" x1="0" y1="500" x2="1000" y2="500" stroke="#1a73e8"`)
	assert.Contains(t, svg, `<circle id="door-1" cx="500" cy="500"`)
	assert.Contains(t, svg, `transform="rotate(-90 750 250)"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRender_EmptyFloor(t *testing.T) {
	svg, err := NewRenderer("").Render(models.NewFloorData(models.DefaultFloorLevels()[0]))
	require.NoError(t, err)
	assert.Contains(t, svg, `viewBox="0 0 1000 1000"`)

	_, err = NewRenderer("").Render(nil)
	assert.Error(t, err)
}
