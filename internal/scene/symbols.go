package scene

import (
	"image/color"
	"math"

	"scatterplot/internal/data"
	"scatterplot/internal/spec"
	"scatterplot/pkg/colorutil"
	"scatterplot/pkg/geometry"
)

// PointRadius is the radius of the filled Point symbol.
const PointRadius = 1

// strokeWidth converts a symbol thickness into a stroke width; thickness 0
// is a one pixel stroke.
func strokeWidth(thickness int) int {
	return 1 + thickness
}

// symbolDiameter is the pixel size a data set's symbol covers.
func symbolDiameter(ds spec.DataSetSpec) int {
	if ds.Symbol == spec.SymbolPoint {
		return 2*PointRadius + 1
	}
	return 2*ds.SymbolRadius + strokeWidth(ds.SymbolThickness)
}

// SymbolStyle is how the symbols of one data set are drawn.
type SymbolStyle struct {
	Kind      spec.Symbol
	Radius    int
	Thickness int
	Colour    color.RGBA
	// Fill paints the interior of circles, triangles and squares under the
	// outline. A zero alpha leaves them hollow.
	Fill color.RGBA
}

// StyleOf returns the symbol style configured for ds.
func StyleOf(ds spec.DataSetSpec) SymbolStyle {
	st := SymbolStyle{
		Kind:      ds.Symbol,
		Radius:    ds.SymbolRadius,
		Thickness: ds.SymbolThickness,
		Colour:    ds.Colour.RGBA(),
	}
	if ds.SymbolFill != colorutil.ColourUnset {
		st.Fill = ds.SymbolFill.RGBA()
	}
	return st
}

// Marker returns the primitives of one symbol centred on centre.
func Marker(st SymbolStyle, centre geometry.PointInt) []Primitive {
	w := strokeWidth(st.Thickness)
	radius, colour := st.Radius, st.Colour
	cx, cy, r := float64(centre.X), float64(centre.Y), float64(radius)

	var shape Shape
	switch st.Kind {
	case spec.SymbolCross:
		return []Primitive{
			Line{From: centre.Add(-radius, 0), To: centre.Add(radius, 0), Colour: colour, Width: w},
			Line{From: centre.Add(0, -radius), To: centre.Add(0, radius), Colour: colour, Width: w},
		}
	case spec.SymbolPoint:
		return []Primitive{FilledShape{Shape: Circle(centre, PointRadius), Fill: colour}}
	case spec.SymbolCircle:
		shape = Circle(centre, radius)
	case spec.SymbolTriangle:
		// apex up
		shape = Polygon(geometry.RegularPolygon(cx, cy, r, 3, -math.Pi/2))
	case spec.SymbolSquare:
		shape = Polygon([]geometry.Point2D{
			{X: cx - r, Y: cy - r},
			{X: cx + r, Y: cy - r},
			{X: cx + r, Y: cy + r},
			{X: cx - r, Y: cy + r},
		})
	default:
		return nil
	}

	if st.Fill.A == 0 {
		return []Primitive{OutlinedShape{Shape: shape, Colour: colour, Width: w}}
	}
	return []Primitive{FilledShape{Shape: shape, Fill: st.Fill, Outline: colour, OutlineWidth: w}}
}

// errorBars maps ±uncertainty through the mapper and caps both ends. Zero
// uncertainties draw nothing.
func (c *composer) errorBars(s data.Sample, centre geometry.PointInt, radius int, colour color.RGBA) []Primitive {
	half := max(2, radius)
	var out []Primitive

	if s.XErr != nil && *s.XErr > 0 {
		lo := c.mapper.ToPixel(s.X-*s.XErr, s.Y)
		hi := c.mapper.ToPixel(s.X+*s.XErr, s.Y)
		out = append(out,
			Line{From: lo, To: hi, Colour: colour, Width: 1},
			Line{From: lo.Add(0, -half), To: lo.Add(0, half), Colour: colour, Width: 1},
			Line{From: hi.Add(0, -half), To: hi.Add(0, half), Colour: colour, Width: 1},
		)
	}
	if s.YErr != nil && *s.YErr > 0 {
		lo := c.mapper.ToPixel(s.X, s.Y-*s.YErr)
		hi := c.mapper.ToPixel(s.X, s.Y+*s.YErr)
		out = append(out,
			Line{From: lo, To: hi, Colour: colour, Width: 1},
			Line{From: lo.Add(-half, 0), To: lo.Add(half, 0), Colour: colour, Width: 1},
			Line{From: hi.Add(-half, 0), To: hi.Add(half, 0), Colour: colour, Width: 1},
		)
	}
	return out
}
