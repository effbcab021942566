package export

import (
	"fmt"
	"strconv"
	"strings"

	"indoor-editor/internal/editor/models"

	"github.com/paulmach/orb"
)

// ============================================================
// SVG Renderer
// ============================================================

var colors = map[string]string{
	"floor":            "#e0e0e0",
	"floorOutline":     "#999999",
	"wall":             "#333333",
	"wallSelected":     "#1a73e8",
	"door":             "#d4a017",
	"doorSelected":     "#ff9800",
	"stair":            "#8bc34a",
	"stairSelected":    "#4caf50",
	"elevator":         "#2196f3",
	"elevatorSelected": "#0d47a1",
}

// Renderer рисует один этаж в SVG. Координаты масштабируются так,
// чтобы большая сторона занимала Size пикселей; ось Y направлена вверх.
type Renderer struct {
	Size     float64
	Selected string
}

func NewRenderer(selected string) *Renderer {
	return &Renderer{Size: 1000, Selected: selected}
}

func (r *Renderer) Render(floor *models.FloorData) (string, error) {
	if floor == nil {
		return "", fmt.Errorf("floor is nil")
	}

	proj := r.projection(floor)

	var elements []string
	if floor.FloorPolygon != nil {
		elements = append(elements, fmt.Sprintf(`<path id="floor-%s" d="%s" fill="%s" stroke="%s" />`,
			floor.FloorIndex, proj.path(floor.FloorPolygon), colors["floor"], colors["floorOutline"]))
	}
	for _, obj := range floor.Objects {
		if elem := r.renderObject(obj, proj); elem != "" {
			elements = append(elements, elem)
		}
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(proj.width), formatFloat(proj.height), formatFloat(proj.width), formatFloat(proj.height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) renderObject(obj *models.IndoorObject, proj projection) string {
	color := func(key string) string {
		if obj.ID == r.Selected {
			return colors[key+"Selected"]
		}
		return colors[key]
	}

	switch g := obj.Geometry.(type) {
	case orb.LineString:
		if obj.Type != models.Wall || len(g) < 2 {
			return ""
		}
		a, b := proj.point(g[0]), proj.point(g[1])
		return fmt.Sprintf(`<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="3" />`,
			obj.ID, formatFloat(a[0]), formatFloat(a[1]), formatFloat(b[0]), formatFloat(b[1]), color("wall"))
	case orb.Polygon:
		return fmt.Sprintf(`<path id="%s" d="%s" fill="%s" fill-opacity="0.8" />`, obj.ID, proj.path(g), color("stair"))
	case orb.Point:
		p := proj.point(g)
		switch obj.Type {
		case models.Door:
			return fmt.Sprintf(`<circle id="%s" cx="%s" cy="%s" r="5" fill="%s" />`,
				obj.ID, formatFloat(p[0]), formatFloat(p[1]), color("door"))
		case models.Elevator:
			// SVG вращает по часовой стрелке при оси Y вниз
			return fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="10" height="10" fill="%s" transform="rotate(%s %s %s)" />`,
				obj.ID, formatFloat(p[0]-5), formatFloat(p[1]-5), color("elevator"),
				formatFloat(-obj.Props.Rotation), formatFloat(p[0]), formatFloat(p[1]))
		}
	}
	return ""
}

// ============================================================
// Projection
// ============================================================

type projection struct {
	bound         orb.Bound
	scale         float64
	width, height float64
}

func (r *Renderer) projection(floor *models.FloorData) projection {
	var bound orb.Bound
	first := true
	extend := func(b orb.Bound) {
		if first {
			bound = b
			first = false
			return
		}
		bound = bound.Union(b)
	}

	if floor.FloorPolygon != nil {
		extend(floor.FloorPolygon.Bound())
	}
	for _, obj := range floor.Objects {
		if obj.Geometry != nil {
			extend(obj.Geometry.Bound())
		}
	}

	size := r.Size
	if size <= 0 {
		size = 1000
	}

	dx := bound.Max[0] - bound.Min[0]
	dy := bound.Max[1] - bound.Min[1]
	span := dx
	if dy > span {
		span = dy
	}
	if first || span == 0 {
		return projection{bound: bound, scale: 1, width: size, height: size}
	}

	scale := size / span
	width, height := dx*scale, dy*scale
	if width == 0 {
		width = size
	}
	if height == 0 {
		height = size
	}
	return projection{bound: bound, scale: scale, width: width, height: height}
}

func (p projection) point(pt orb.Point) orb.Point {
	return orb.Point{
		(pt[0] - p.bound.Min[0]) * p.scale,
		(p.bound.Max[1] - pt[1]) * p.scale,
	}
}

func (p projection) path(poly orb.Polygon) string {
	var path strings.Builder
	for _, ring := range poly {
		if len(ring) == 0 {
			continue
		}
		points := ring
		if len(points) > 1 && points[0] == points[len(points)-1] {
			points = points[:len(points)-1]
		}
		if path.Len() > 0 {
			path.WriteString(" ")
		}
		path.WriteString("M ")
		path.WriteString(formatPoint(p.point(points[0])))
		for _, pt := range points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(p.point(pt)))
		}
		path.WriteString(" Z")
	}
	return path.String()
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p orb.Point) string {
	return formatFloat(p[0]) + " " + formatFloat(p[1])
}
