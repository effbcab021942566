package handlers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"gopkg.in/yaml.v3"
)

// ============================================================
// API Docs
// ============================================================

//go:embed openapi.yaml
var openAPISpec []byte

func RegisterDocs(r fiber.Router) {
	r.Get("/docs/openapi.yaml", OpenAPIYAML)
	r.Get("/docs/openapi.json", OpenAPIJSON)
	r.Get("/docs", SwaggerUI)
}

// OpenAPIYAML отдаёт OpenAPI YAML.
func OpenAPIYAML(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openAPISpec)
}

// OpenAPIJSON отдаёт ту же спецификацию в JSON.
func OpenAPIJSON(c fiber.Ctx) error {
	doc, err := openAPIDocument()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(doc)
}

func openAPIDocument() (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi: %w", err)
	}
	return doc, nil
}

// SwaggerUI отдаёт страницу Swagger UI, читающую spec из /docs/openapi.yaml.
func SwaggerUI(c fiber.Ctx) error {
	page := `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Indoor Editor API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
    });
  };
</script>
</body>
</html>`

	c.Type("html")
	return c.SendString(page)
}
