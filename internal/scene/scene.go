// Package scene builds the ordered list of draw primitives for a chart.
package scene

import (
	"fmt"
	"image/color"

	"scatterplot/internal/layout"
	"scatterplot/pkg/geometry"
)

// Layer orders primitives back to front.
type Layer int

const (
	LayerBackground Layer = iota
	LayerGrid
	LayerAxes
	LayerLabels
	LayerBestFit
	LayerData
	LayerLegend
	numLayers
)

var layerNames = [...]string{"background", "grid", "axes", "labels", "best-fit", "data", "legend"}

func (l Layer) String() string {
	if l < LayerBackground || l >= numLayers {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// Primitive is one drawing instruction in pixel space.
type Primitive interface {
	primitive()
}

// Line is a straight stroke. An empty Clip means the whole canvas.
type Line struct {
	From, To geometry.PointInt
	Colour   color.RGBA
	Width    int
	Clip     geometry.RectInt
}

// Polyline strokes consecutive points. An empty Clip means the whole canvas.
type Polyline struct {
	Points []geometry.PointInt
	Colour color.RGBA
	Width  int
	Clip   geometry.RectInt
}

// ShapeKind selects the geometry of a Shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
	ShapeRect
)

// Shape is a closed outline: a circle (Center, Radius), a polygon
// (Vertices, in pixel coordinates) or a rectangle (Rect).
type Shape struct {
	Kind     ShapeKind
	Center   geometry.PointInt
	Radius   int
	Vertices []geometry.Point2D
	Rect     geometry.RectInt
}

// Circle returns a circle shape.
func Circle(center geometry.PointInt, radius int) Shape {
	return Shape{Kind: ShapeCircle, Center: center, Radius: radius}
}

// Polygon returns a polygon shape.
func Polygon(vertices []geometry.Point2D) Shape {
	return Shape{Kind: ShapePolygon, Vertices: vertices}
}

// Rect returns a rectangle shape.
func Rect(r geometry.RectInt) Shape {
	return Shape{Kind: ShapeRect, Rect: r}
}

// FilledShape paints the interior of a shape and, when OutlineWidth > 0,
// its outline on top.
type FilledShape struct {
	Shape        Shape
	Fill         color.RGBA
	Outline      color.RGBA
	OutlineWidth int
}

// OutlinedShape strokes the outline of a shape only.
type OutlinedShape struct {
	Shape  Shape
	Colour color.RGBA
	Width  int
}

// GlyphRun is text whose baseline starts at Dot.
type GlyphRun struct {
	Text   string
	Dot    geometry.PointInt
	Size   float64
	Colour color.RGBA
}

func (Line) primitive()          {}
func (Polyline) primitive()      {}
func (FilledShape) primitive()   {}
func (OutlinedShape) primitive() {}
func (GlyphRun) primitive()      {}

// Scene is the composed chart: canvas size, the layout it was built from
// and the primitives of every layer.
type Scene struct {
	Width, Height int
	Layout        layout.AxisLayout
	Frame         layout.Frame

	layers [numLayers][]Primitive
}

// New creates an empty scene for a canvas.
func New(width, height int) *Scene {
	return &Scene{Width: width, Height: height}
}

// Add appends primitives to a layer.
func (s *Scene) Add(l Layer, p ...Primitive) {
	s.layers[l] = append(s.layers[l], p...)
}

// Layer returns the primitives of one layer in insertion order.
func (s *Scene) Layer(l Layer) []Primitive {
	return s.layers[l]
}

// Primitives returns every primitive back to front.
func (s *Scene) Primitives() []Primitive {
	n := 0
	for _, l := range s.layers {
		n += len(l)
	}
	out := make([]Primitive, 0, n)
	for _, l := range s.layers {
		out = append(out, l...)
	}
	return out
}

// Len returns the total number of primitives.
func (s *Scene) Len() int {
	n := 0
	for _, l := range s.layers {
		n += len(l)
	}
	return n
}
