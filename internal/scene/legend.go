package scene

import (
	"scatterplot/internal/layout"
	"scatterplot/pkg/colorutil"
	"scatterplot/pkg/geometry"
)

// legend draws a boxed row per data set: symbol swatch, name and, when the
// data set has a best fit, a short line in the curve colour.
func (c *composer) legend() {
	box := c.frame.Legend
	c.scene.Add(LayerLegend, FilledShape{
		Shape:        Rect(box),
		Fill:         colorutil.White,
		Outline:      colorutil.Grey,
		OutlineWidth: 1,
	})

	swatch := 1
	for _, ds := range c.g.DataSets {
		swatch = max(swatch, symbolDiameter(ds))
	}
	size := c.frame.Fonts.Legend
	rowH := c.frame.LegendRowHeight

	for i, ds := range c.g.DataSets {
		cy := box.Y + layout.LegendPadding + i*rowH + rowH/2
		cx := box.X + layout.LegendPadding + swatch/2
		c.scene.Add(LayerLegend, Marker(StyleOf(ds), geometry.Pt(cx, cy))...)

		e := c.m.Measure(ds.Name, size)
		c.text(LayerLegend, ds.Name, size, box.X+layout.LegendPadding+swatch+layout.LabelGap, cy+(e.Ascent-e.Descent)/2)

		if i < len(c.curves) && c.curves[i] != nil {
			x2 := box.Right() - layout.LegendPadding - 1
			x1 := x2 - layout.LegendFitLine + 1
			c.scene.Add(LayerLegend, Line{
				From:   geometry.Pt(x1, cy),
				To:     geometry.Pt(x2, cy),
				Colour: c.curves[i].LineColour().RGBA(),
				Width:  BestFitWidth,
			})
		}
	}
}
