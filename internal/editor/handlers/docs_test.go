package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocs(t *testing.T) {
	app := fiber.New()
	RegisterDocs(app)

	resp, data := call(t, app, http.MethodGet, "/docs/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(data), "openapi: 3.0.3"))

	resp, data = call(t, app, http.MethodGet, "/docs/openapi.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc["paths"], "/sessions/{id}/pointer")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

// Every registered editor route is documented.
func TestDocs_CoverRoutes(t *testing.T) {
	app := fiber.New()
	NewEditorHandler(nil, nil).Register(app)

	doc, err := openAPIDocument()
	require.NoError(t, err)
	paths := doc["paths"].(map[string]any)

	for _, route := range app.GetRoutes(true) {
		if route.Method == fiber.MethodHead {
			continue
		}
		path := strings.NewReplacer(":id", "{id}", ":oid", "{oid}", ":buildingId", "{buildingId}").Replace(route.Path)
		item, ok := paths[path].(map[string]any)
		require.True(t, ok, "undocumented path %s", route.Path)
		assert.Contains(t, item, strings.ToLower(route.Method), route.Path)
	}
}
