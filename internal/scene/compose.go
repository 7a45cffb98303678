package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"scatterplot/internal/curve"
	"scatterplot/internal/data"
	"scatterplot/internal/glyph"
	"scatterplot/internal/layout"
	"scatterplot/internal/spec"
	"scatterplot/pkg/colorutil"
	"scatterplot/pkg/geometry"
)

// BestFitWidth is the stroke width of best-fit curves.
const BestFitWidth = 2

// Options tunes composition.
type Options struct {
	// Measurer sizes text; nil uses the embedded Go Regular font.
	Measurer layout.Measurer

	// Parallel builds each data set's primitives on its own goroutine.
	// The result is identical to a sequential build.
	Parallel bool
}

// Compose lays out the chart and builds its primitives. sets and curves
// are indexed like g.DataSets; a nil curve means the data set has no best
// fit.
func Compose(g *spec.GraphSpec, sets []data.SampleSet, curves []curve.Curve, opts Options) (*Scene, error) {
	if len(sets) != len(g.DataSets) {
		return nil, fmt.Errorf("got %d sample sets for %d data sets", len(sets), len(g.DataSets))
	}
	if len(curves) > len(sets) {
		return nil, fmt.Errorf("got %d curves for %d data sets", len(curves), len(sets))
	}

	m := opts.Measurer
	if m == nil {
		lib, err := glyph.Default()
		if err != nil {
			return nil, err
		}
		m = lib
	}

	b, ok := data.Bounds(sets...)
	if !ok {
		return nil, spec.NewValidationError("", "data_sets",
			fmt.Errorf("%w: no samples to plot", spec.ErrInvalidLayout))
	}
	slog.Debug("data bounds", "x_min", b.MinX, "x_max", b.MaxX, "y_min", b.MinY, "y_max", b.MaxY)

	ranges, err := layout.ResolveRanges(b, g.XAxisResolution, g.YAxisResolution)
	if err != nil {
		return nil, err
	}

	frame, err := layout.ComputeFrame(frameInput(g, curves), ranges, m)
	if err != nil {
		return nil, err
	}
	l, err := layout.Fit(ranges, frame.Area)
	if err != nil {
		return nil, err
	}

	c := &composer{
		g:      g,
		sets:   sets,
		curves: curves,
		frame:  frame,
		layout: l,
		mapper: layout.NewMapper(l),
		m:      m,
		scene:  New(g.Width(), g.Height()),
	}
	c.scene.Layout = l
	c.scene.Frame = frame

	c.background()
	if g.HasGrid {
		c.grid()
	}
	c.axes()
	c.labels()
	c.dataSets(opts.Parallel)
	if frame.HasLegend() {
		c.legend()
	}

	slog.Debug("composed scene", "primitives", c.scene.Len())
	return c.scene, nil
}

func frameInput(g *spec.GraphSpec, curves []curve.Curve) layout.FrameInput {
	in := layout.FrameInput{
		Width:  g.Width(),
		Height: g.Height(),
		Title:  g.Title,
		XLabel: g.XAxisLabel,
		YLabel: g.YAxisLabel,
	}
	if !g.HasLegend {
		return in
	}
	in.LegendNames = make([]string, len(g.DataSets))
	for i, ds := range g.DataSets {
		in.LegendNames[i] = ds.Name
		in.SwatchSize = max(in.SwatchSize, symbolDiameter(ds))
	}
	for _, cv := range curves {
		if cv != nil {
			in.LegendFits = true
		}
	}
	return in
}

type composer struct {
	g      *spec.GraphSpec
	sets   []data.SampleSet
	curves []curve.Curve
	frame  layout.Frame
	layout layout.AxisLayout
	mapper layout.Mapper
	m      layout.Measurer
	scene  *Scene
}

func (c *composer) background() {
	c.scene.Add(LayerBackground, FilledShape{
		Shape: Rect(c.frame.Canvas),
		Fill:  colorutil.White,
	})
}

func (c *composer) grid() {
	x, y := c.layout.X, c.layout.Y
	top, bottom := y.MaxPixel(), y.MinPixel()
	left, right := x.MinPixel(), x.MaxPixel()

	for i := -x.NegSteps; i <= x.PosSteps; i++ {
		if i == 0 {
			continue
		}
		px := x.Marker(i)
		c.scene.Add(LayerGrid, Line{From: geometry.Pt(px, top), To: geometry.Pt(px, bottom), Colour: colorutil.Grey, Width: 1})
	}
	for i := -y.NegSteps; i <= y.PosSteps; i++ {
		if i == 0 {
			continue
		}
		py := y.Marker(i)
		c.scene.Add(LayerGrid, Line{From: geometry.Pt(left, py), To: geometry.Pt(right, py), Colour: colorutil.Grey, Width: 1})
	}
}

// text adds a glyph run with its baseline at (x, baseline).
func (c *composer) text(l Layer, s string, size float64, x, baseline int) {
	if s == "" {
		return
	}
	c.scene.Add(l, GlyphRun{Text: s, Dot: geometry.Pt(x, baseline), Size: size, Colour: colorutil.Black})
}

func (c *composer) labels() {
	fonts := c.frame.Fonts
	w := c.g.Width()

	if !c.frame.Title.Empty() {
		e := c.m.Measure(c.g.Title, fonts.Title)
		c.text(LayerLabels, c.g.Title, fonts.Title, (w-e.Width)/2, c.frame.Title.Y+e.Ascent)
	}

	if !c.frame.XLabel.Empty() {
		area := c.layout.Area
		e := c.m.Measure(c.g.XAxisLabel, fonts.Axis)
		c.text(LayerLabels, c.g.XAxisLabel, fonts.Axis, area.X+(area.Width-e.Width)/2, c.frame.XLabel.Y+e.Ascent)
	}

	if !c.frame.YLabel.Empty() {
		// centred on the y axis, kept inside the canvas
		e := c.m.Measure(c.g.YAxisLabel, fonts.Axis)
		x := c.layout.X.Origin - e.Width/2
		x = max(layout.CanvasBorder, min(x, w-layout.CanvasBorder-e.Width))
		c.text(LayerLabels, c.g.YAxisLabel, fonts.Axis, x, c.frame.YLabel.Y+e.Ascent)
	}
}

// dataSets builds best-fit curves and sample symbols per data set and adds
// them in specification order.
func (c *composer) dataSets(parallel bool) {
	n := len(c.sets)
	fits := make([][]Primitive, n)
	points := make([][]Primitive, n)

	build := func(i int) {
		if i < len(c.curves) && c.curves[i] != nil {
			fits[i] = c.bestFit(c.curves[i])
		}
		points[i] = c.samples(c.g.DataSets[i], c.sets[i])
	}

	if parallel {
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				build(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < n; i++ {
			build(i)
		}
	}

	for i := 0; i < n; i++ {
		c.scene.Add(LayerBestFit, fits[i]...)
		c.scene.Add(LayerData, points[i]...)
	}
}

// bestFit samples the curve once per pixel column of the x axis and maps
// every finite run to a polyline clipped to the plot area.
func (c *composer) bestFit(cv curve.Curve) []Primitive {
	x := c.layout.X
	runs := curve.Sample(cv, x.Min(), x.Max(), x.Span()+1)
	colour := cv.LineColour().RGBA()

	var out []Primitive
	for _, run := range runs {
		pts := make([]geometry.PointInt, 0, len(run))
		for _, p := range run {
			px := c.mapper.ToPixel(p.X, p.Y)
			if len(pts) > 0 && pts[len(pts)-1] == px {
				continue
			}
			pts = append(pts, px)
		}
		if len(pts) < 2 {
			continue
		}
		out = append(out, Polyline{Points: pts, Colour: colour, Width: BestFitWidth, Clip: c.layout.Area})
	}
	return out
}

func (c *composer) samples(ds spec.DataSetSpec, set data.SampleSet) []Primitive {
	st := StyleOf(ds)
	var out []Primitive
	for _, s := range set.Samples {
		centre := c.mapper.ToPixel(s.X, s.Y)
		out = append(out, c.errorBars(s, centre, st.Radius, st.Colour)...)
		out = append(out, Marker(st, centre)...)
	}
	return out
}
