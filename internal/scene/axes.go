package scene

import (
	"scatterplot/internal/layout"
	"scatterplot/pkg/colorutil"
	"scatterplot/pkg/geometry"
)

// tickLength alternates short and long major markers.
func tickLength(i int) int {
	if i%2 != 0 {
		return layout.MajorTickShort
	}
	return layout.MajorTickLong
}

// axes draws both axis lines through the origin, their major and minor
// markers and the marker labels. Markers point away from the data.
func (c *composer) axes() {
	x, y := c.layout.X, c.layout.Y
	black := colorutil.Black

	c.scene.Add(LayerAxes,
		Line{From: geometry.Pt(x.MinPixel(), y.Origin), To: geometry.Pt(x.MaxPixel(), y.Origin), Colour: black, Width: 1},
		Line{From: geometry.Pt(x.Origin, y.MinPixel()), To: geometry.Pt(x.Origin, y.MaxPixel()), Colour: black, Width: 1},
	)

	// +1 points down or right in pixel space
	xDir := 1
	if y.Side == layout.Negative {
		xDir = -1
	}
	yDir := -1
	if x.Side == layout.Negative {
		yDir = 1
	}

	tick := func(from, to geometry.PointInt) {
		c.scene.Add(LayerAxes, Line{From: from, To: to, Colour: black, Width: 1})
	}

	for i := -x.NegSteps; i <= x.PosSteps; i++ {
		if i == 0 {
			continue
		}
		px := x.Marker(i)
		tick(geometry.Pt(px, y.Origin), geometry.Pt(px, y.Origin+xDir*tickLength(i)))
	}
	if d := layout.MinorDivisions(x.PixelsPerStep); d > 1 {
		for i := -x.NegSteps; i < x.PosSteps; i++ {
			for j := 1; j < d; j++ {
				px := x.Marker(i) + j*x.PixelsPerStep/d
				tick(geometry.Pt(px, y.Origin), geometry.Pt(px, y.Origin+xDir*layout.MinorTick))
			}
		}
	}

	for i := -y.NegSteps; i <= y.PosSteps; i++ {
		if i == 0 {
			continue
		}
		py := y.Marker(i)
		tick(geometry.Pt(x.Origin, py), geometry.Pt(x.Origin+yDir*tickLength(i), py))
	}
	if d := layout.MinorDivisions(y.PixelsPerStep); d > 1 {
		for i := -y.NegSteps; i < y.PosSteps; i++ {
			for j := 1; j < d; j++ {
				py := y.Marker(i) - j*y.PixelsPerStep/d
				tick(geometry.Pt(x.Origin, py), geometry.Pt(x.Origin+yDir*layout.MinorTick, py))
			}
		}
	}

	size := c.frame.Fonts.Tick
	offset := layout.MajorTickLong + layout.LabelGap

	for _, t := range layout.Ticks(x) {
		e := c.m.Measure(t.Label, size)
		tx := x.Marker(t.Index) - e.Width/2
		if xDir > 0 {
			c.text(LayerAxes, t.Label, size, tx, y.Origin+offset+e.Ascent)
		} else {
			c.text(LayerAxes, t.Label, size, tx, y.Origin-offset-e.Descent)
		}
	}
	for _, t := range layout.Ticks(y) {
		e := c.m.Measure(t.Label, size)
		baseline := y.Marker(t.Index) + (e.Ascent-e.Descent)/2
		if yDir < 0 {
			c.text(LayerAxes, t.Label, size, x.Origin-offset-e.Width, baseline)
		} else {
			c.text(LayerAxes, t.Label, size, x.Origin+offset, baseline)
		}
	}
}
