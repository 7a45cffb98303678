package layout

import (
	"errors"
	"math"
	"testing"

	"scatterplot/internal/curve"
	"scatterplot/internal/spec"
	"scatterplot/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every rune the same advance.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, size float64) TextExtent {
	return TextExtent{
		Width:   len([]rune(text)) * int(math.Ceil(size*0.6)),
		Ascent:  int(math.Ceil(size * 0.8)),
		Descent: int(math.Ceil(size * 0.2)),
	}
}

func frameInput() FrameInput {
	return FrameInput{
		Width:       840,
		Height:      600,
		Title:       "Scatter",
		XLabel:      "x axis",
		YLabel:      "y axis",
		LegendNames: []string{"first", "second set"},
		SwatchSize:  7,
		LegendFits:  true,
	}
}

func resolveAndFit(t *testing.T, b geometry.Bounds, in FrameInput) (Frame, AxisLayout) {
	t.Helper()
	r, err := ResolveRanges(b, 11, 11)
	require.NoError(t, err)
	f, err := ComputeFrame(in, r, fixedMeasurer{})
	require.NoError(t, err)
	l, err := Fit(r, f.Area)
	require.NoError(t, err)
	return f, l
}

func TestQuadrantOf(t *testing.T) {
	tests := []struct {
		xMin, xMax, yMin, yMax float64
		want                   Quadrant
	}{
		{0, 5, 0, 5, TopRight},
		{-5, 0, 1, 5, TopLeft},
		{1, 5, -5, -1, BottomRight},
		{-5, -1, -5, -1, BottomLeft},
		{-5, 5, 1, 5, TopPair},
		{-5, 5, -5, 0, BottomPair},
		{-5, -1, -5, 5, LeftPair},
		{1, 5, -5, 5, RightPair},
		{-5, 5, -3, 3, All},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			q := QuadrantOf(SideOf(tt.xMin, tt.xMax), SideOf(tt.yMin, tt.yMax))
			assert.Equal(t, tt.want, q)

			xs, ys := q.Sides()
			assert.Equal(t, q, QuadrantOf(xs, ys))
		})
	}
}

func TestSideOfZero(t *testing.T) {
	assert.Equal(t, Positive, SideOf(0, 0))
	assert.Equal(t, Positive, SideOf(0, 3))
	assert.Equal(t, Negative, SideOf(-3, 0))
	assert.Equal(t, Both, SideOf(-0.1, 0.1))
}

func TestLegendCorner(t *testing.T) {
	assert.Equal(t, CornerRightTop, LegendCorner(TopRight))
	assert.Equal(t, CornerRightTop, LegendCorner(All))
	assert.Equal(t, CornerRightTop, LegendCorner(TopPair))
	assert.Equal(t, CornerRightTop, LegendCorner(RightPair))
	assert.Equal(t, CornerRightBottom, LegendCorner(BottomRight))
	assert.Equal(t, CornerRightBottom, LegendCorner(BottomPair))
	assert.Equal(t, CornerLeftTop, LegendCorner(TopLeft))
	assert.Equal(t, CornerLeftTop, LegendCorner(LeftPair))
	assert.Equal(t, CornerLeftBottom, LegendCorner(BottomLeft))
}

func TestScenarioFirstQuadrant(t *testing.T) {
	// samples (0.5, 0.5), (1, 1), (1.5, 1.5)
	b := geometry.Bounds{MinX: 0.5, MaxX: 1.5, MinY: 0.5, MaxY: 1.5}

	r, err := ResolveRanges(b, 11, 11)
	require.NoError(t, err)
	assert.Equal(t, TopRight, r.Quadrant)
	assert.InDelta(t, 1.65, r.X.Extent, 1e-12)
	assert.InDelta(t, 1.65, r.Y.Extent, 1e-12)
	assert.InDelta(t, 0.15, r.X.Step, 1e-12)
	assert.Equal(t, 0, r.X.NegSteps)
	assert.Equal(t, 11, r.X.PosSteps)

	xt := Ticks(r.X)
	yt := Ticks(r.Y)
	require.Len(t, xt, 11)
	require.Len(t, yt, 11)
	assert.Equal(t, "0.15", xt[0].Label)
	assert.Equal(t, "1.65", xt[10].Label)

	_, l := resolveAndFit(t, b, frameInput())
	for i := 1; i < 11; i++ {
		assert.Equal(t, l.X.PixelsPerStep, l.X.Marker(i+1)-l.X.Marker(i))
		assert.Equal(t, l.Y.PixelsPerStep, l.Y.Marker(i)-l.Y.Marker(i+1))
	}
	assert.LessOrEqual(t, l.X.MaxPixel(), l.Area.Right()-1)
	assert.GreaterOrEqual(t, l.Y.MaxPixel(), l.Area.Y)
}

func TestAllPositiveOriginAtBottomLeftMargin(t *testing.T) {
	for _, b := range []geometry.Bounds{
		{MinX: 0.5, MaxX: 1.5, MinY: 0.5, MaxY: 1.5},
		{MinX: 0, MaxX: 1000, MinY: 3, MaxY: 7},
		{MinX: 2, MaxX: 2, MinY: 0, MaxY: 0.001},
	} {
		f, l := resolveAndFit(t, b, frameInput())
		assert.Equal(t, TopRight, l.Quadrant)
		assert.Equal(t, geometry.Pt(f.Area.X, f.Area.Bottom()-1), l.OriginPixel())
		assert.Greater(t, l.X.Scale, 0.0)
		assert.Less(t, l.Y.Scale, 0.0)
	}
}

func TestDegenerateAxisFallsBack(t *testing.T) {
	r, err := ResolveRanges(geometry.Bounds{MinX: 0, MaxX: 0, MinY: 4, MaxY: 4}, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, DegenerateExtent, r.X.Extent)
	assert.InDelta(t, 0.1, r.X.Step, 1e-12)
	assert.InDelta(t, 4.4, r.Y.Extent, 1e-12)

	r, err = ResolveRanges(geometry.Bounds{MinX: 0.2, MaxX: 0.2, MinY: -0.3, MaxY: -0.3}, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, DegenerateExtent, r.X.Extent)
	assert.Equal(t, DegenerateExtent, r.Y.Extent)
	assert.Equal(t, BottomRight, r.Quadrant)

	l, err := Fit(r, geometry.NewRectInt(0, 0, 401, 401))
	require.NoError(t, err)
	assert.False(t, math.IsInf(l.X.Scale, 0) || math.IsNaN(l.X.Scale))
	assert.False(t, math.IsInf(l.Y.Scale, 0) || math.IsNaN(l.Y.Scale))
}

func TestNegatedYKeepsXScale(t *testing.T) {
	up := geometry.Bounds{MinX: 0.5, MaxX: 9, MinY: 0.25, MaxY: 3.5}
	down := geometry.Bounds{MinX: 0.5, MaxX: 9, MinY: -3.5, MaxY: -0.25}

	fu, lu := resolveAndFit(t, up, frameInput())
	fd, ld := resolveAndFit(t, down, frameInput())

	assert.Equal(t, TopRight, lu.Quadrant)
	assert.Equal(t, BottomRight, ld.Quadrant)
	assert.Equal(t, fu.Area.Width, fd.Area.Width)
	assert.Equal(t, lu.X.Scale, ld.X.Scale)
	assert.Equal(t, lu.X.PixelsPerStep, ld.X.PixelsPerStep)
	assert.Equal(t, lu.Y.Scale, ld.Y.Scale)

	// the x axis moves from the bottom edge to the top edge
	assert.Equal(t, fu.Area.Bottom()-1, lu.Y.Origin)
	assert.Equal(t, fd.Area.Y, ld.Y.Origin)
	assert.Equal(t, CornerRightTop, fu.LegendCorner)
	assert.Equal(t, CornerRightBottom, fd.LegendCorner)
}

func TestAllQuadrantsOriginAtZeroCrossing(t *testing.T) {
	f, l := resolveAndFit(t, geometry.Bounds{MinX: -5, MaxX: 5, MinY: -3, MaxY: 3}, frameInput())
	assert.Equal(t, All, l.Quadrant)
	assert.Equal(t, 11, l.X.NegSteps)
	assert.Equal(t, 11, l.X.PosSteps)
	assert.InDelta(t, 5.5, l.X.Extent, 1e-12)
	assert.InDelta(t, 3.3, l.Y.Extent, 1e-12)

	assert.Equal(t, f.Area.X+11*l.X.PixelsPerStep, l.X.Origin)
	assert.Equal(t, f.Area.Bottom()-1-11*l.Y.PixelsPerStep, l.Y.Origin)
	assert.NotEqual(t, geometry.Pt(420, 300), l.OriginPixel())

	m := NewMapper(l)
	assert.Equal(t, l.OriginPixel(), m.ToPixel(0, 0))
}

func TestAsymmetricTwoSidedAxis(t *testing.T) {
	r, err := ResolveRanges(geometry.Bounds{MinX: -2, MaxX: 8, MinY: -9, MaxY: 1}, 11, 11)
	require.NoError(t, err)
	assert.Equal(t, All, r.Quadrant)
	assert.Equal(t, 3, r.X.NegSteps)
	assert.Equal(t, 11, r.X.PosSteps)
	assert.Equal(t, 11, r.Y.NegSteps)
	assert.Equal(t, 2, r.Y.PosSteps)

	area := geometry.NewRectInt(50, 40, 701, 521)
	l, err := Fit(r, area)
	require.NoError(t, err)
	assert.Equal(t, 50+3*l.X.PixelsPerStep, l.X.Origin)
	assert.Equal(t, 560-11*l.Y.PixelsPerStep, l.Y.Origin)
	assert.LessOrEqual(t, l.X.Min(), -2.0)
	assert.GreaterOrEqual(t, l.Y.Max(), 1.0)
}

func TestNegativeOnlyAxisAnchorsRight(t *testing.T) {
	r, err := ResolveRanges(geometry.Bounds{MinX: -3, MaxX: -1, MinY: 1, MaxY: 2}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, TopLeft, r.Quadrant)

	area := geometry.NewRectInt(100, 20, 500, 300)
	l, err := Fit(r, area)
	require.NoError(t, err)
	assert.Equal(t, area.Right()-1, l.X.Origin)
	assert.GreaterOrEqual(t, l.X.MinPixel(), area.X)
	assert.Equal(t, l.X.Origin-10*l.X.PixelsPerStep, l.X.MinPixel())
}

func TestMapperRoundTrip(t *testing.T) {
	_, l := resolveAndFit(t, geometry.Bounds{MinX: -5, MaxX: 12, MinY: -0.3, MaxY: 0.9}, frameInput())
	m := NewMapper(l)

	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: -4.2, Y: 0.55}, {X: 11.9, Y: -0.29}, {X: 3.3, Y: 0.1}} {
		exact := m.ToData(m.ToPixelF(p.X, p.Y).X, m.ToPixelF(p.X, p.Y).Y)
		assert.InDelta(t, p.X, exact.X, 1e-9)
		assert.InDelta(t, p.Y, exact.Y, 1e-9)

		px := m.ToPixel(p.X, p.Y)
		back := m.ToData(float64(px.X), float64(px.Y))
		assert.InDelta(t, p.X, back.X, 0.5/l.X.Scale+1e-12)
		assert.InDelta(t, p.Y, back.Y, 0.5/-l.Y.Scale+1e-12)
	}
}

func TestMapperRoundsHalfAwayAndClamps(t *testing.T) {
	l := AxisLayout{
		X: Axis{Origin: 0, Scale: 1},
		Y: Axis{Origin: 0, Scale: -1},
	}
	m := NewMapper(l)
	assert.Equal(t, geometry.Pt(3, -3), m.ToPixel(2.5, 2.5))
	assert.Equal(t, geometry.Pt(-3, 3), m.ToPixel(-2.5, -2.5))

	huge := m.ToPixel(math.Inf(1), -1e300)
	assert.Equal(t, pixelLimit, huge.X)
	assert.Equal(t, pixelLimit, huge.Y)
	assert.Equal(t, pixelLimit, m.ToPixel(math.NaN(), 0).X)
	assert.Equal(t, -pixelLimit, m.ToPixel(math.Inf(-1), 0).X)
}

func TestLinearCurveMapsToDescendingPixels(t *testing.T) {
	_, l := resolveAndFit(t, geometry.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, frameInput())
	m := NewMapper(l)

	runs := curve.Sample(curve.Linear{Gradient: 1, YIntercept: 0}, 0, 10, l.X.Span()+1)
	require.Len(t, runs, 1)
	prev := m.ToPixelF(runs[0][0].X, runs[0][0].Y)
	for _, p := range runs[0][1:] {
		cur := m.ToPixelF(p.X, p.Y)
		assert.Greater(t, cur.X, prev.X)
		assert.Less(t, cur.Y, prev.Y)
		prev = cur
	}
}

func TestInvalidLayout(t *testing.T) {
	_, err := ResolveRanges(geometry.Bounds{MaxX: 1, MaxY: 1}, 0, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, spec.ErrInvalidLayout))
	var verr *spec.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "x_axis_resolution", verr.Field)

	r, err := ResolveRanges(geometry.Bounds{MaxX: 1, MaxY: 1}, 50, 50)
	require.NoError(t, err)
	_, err = Fit(r, geometry.NewRectInt(0, 0, 30, 300))
	assert.True(t, errors.Is(err, spec.ErrInvalidLayout))

	in := frameInput()
	in.Width, in.Height = 40, 30
	_, err = ComputeFrame(in, r, fixedMeasurer{})
	assert.True(t, errors.Is(err, spec.ErrInvalidLayout))
}

func TestFrameBands(t *testing.T) {
	f, l := resolveAndFit(t, geometry.Bounds{MinX: 1, MaxX: 5, MinY: 1, MaxY: 5}, frameInput())

	assert.Equal(t, CanvasBorder, f.Title.Y)
	assert.Greater(t, f.YLabel.Y, f.Title.Bottom())
	assert.Less(t, f.YLabel.Bottom(), f.Area.Y)
	assert.Greater(t, f.XLabel.Y, f.Area.Bottom())
	assert.LessOrEqual(t, f.XLabel.Bottom(), 600-CanvasBorder)

	require.True(t, f.HasLegend())
	assert.Equal(t, 840-CanvasBorder, f.Legend.Right())
	assert.Equal(t, f.Area.Y, f.Legend.Y)
	assert.Less(t, f.Area.Right(), f.Legend.X)
	assert.False(t, f.Legend.ImageRect().Overlaps(f.Area.ImageRect()))
	assert.Equal(t, f.Area, l.Area)

	in := frameInput()
	in.LegendNames = nil
	in.Title = ""
	bare, err := ComputeFrame(in, Ranges{Quadrant: TopRight, X: l.X, Y: l.Y}, fixedMeasurer{})
	require.NoError(t, err)
	assert.False(t, bare.HasLegend())
	assert.True(t, bare.Title.Empty())
	assert.Greater(t, bare.Area.Width, f.Area.Width)
	assert.Greater(t, bare.Area.Height, f.Area.Height)
}

func TestLegendOnLeftForNegativeX(t *testing.T) {
	f, _ := resolveAndFit(t, geometry.Bounds{MinX: -5, MaxX: -1, MinY: -4, MaxY: -1}, frameInput())
	assert.Equal(t, CornerLeftBottom, f.LegendCorner)
	assert.Equal(t, CanvasBorder, f.Legend.X)
	assert.Equal(t, f.Area.Bottom(), f.Legend.Bottom())
	assert.Less(t, f.Legend.Right(), f.Area.X)
}

func TestLegendTallerThanPlot(t *testing.T) {
	r, err := ResolveRanges(geometry.Bounds{MinX: 1, MaxX: 5, MinY: -5, MaxY: -1}, 11, 11)
	require.NoError(t, err)

	in := frameInput()
	in.LegendNames = make([]string, 100)
	for i := range in.LegendNames {
		in.LegendNames[i] = "set"
	}
	_, err = ComputeFrame(in, r, fixedMeasurer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, spec.ErrInvalidLayout))
	var verr *spec.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "has_legend", verr.Field)

	in.LegendNames = in.LegendNames[:5]
	f, err := ComputeFrame(in, r, fixedMeasurer{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, f.Legend.Y, f.Area.Y)
	assert.LessOrEqual(t, f.Legend.Bottom(), f.Area.Bottom())
}

func TestFontSizes(t *testing.T) {
	fs := NewFontSizes(840)
	assert.InDelta(t, 1.5*math.Sqrt(840)/phi, fs.Title, 1e-12)
	assert.InDelta(t, fs.Title/2, fs.Axis, 1e-12)
	assert.Equal(t, fs.Axis, fs.Tick)
	assert.Equal(t, fs.Axis, fs.Legend)

	small := NewFontSizes(10)
	assert.Equal(t, minFontSize, small.Axis)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0.15", FormatTick(0.15, 0.15))
	assert.Equal(t, "0.3", FormatTick(0.3, 0.15))
	assert.Equal(t, "-1.65", FormatTick(-1.65, 0.15))
	assert.Equal(t, "3", FormatTick(3, 1))
	assert.Equal(t, "2500", FormatTick(2500, 500))
	assert.Equal(t, "0.0003", FormatTick(0.0003, 0.0001))
	assert.Equal(t, "0", FormatTick(-0.00000001, 0.5))
}

func TestFormatTickTinySteps(t *testing.T) {
	assert.Equal(t, "3e-09", FormatTick(3e-9, 1e-9))
	assert.Equal(t, "5.4e-09", FormatTick(3*1.8e-9, 1.8e-9))
	assert.Equal(t, "-1.8e-08", FormatTick(-10*1.8e-9, 1.8e-9))
	assert.Equal(t, "0.00004", FormatTick(4e-5, 2e-5))

	ticks := Ticks(Axis{Step: 2.2e-9, NegSteps: 0, PosSteps: 10})
	require.Len(t, ticks, 10)
	seen := map[string]bool{}
	for _, tk := range ticks {
		assert.NotEqual(t, "0", tk.Label)
		assert.False(t, seen[tk.Label], "duplicate label %s", tk.Label)
		seen[tk.Label] = true
	}
	assert.Equal(t, "2.2e-08", ticks[9].Label)
}

func TestMinorDivisions(t *testing.T) {
	assert.Equal(t, 10, MinorDivisions(40))
	assert.Equal(t, 5, MinorDivisions(30))
	assert.Equal(t, 5, MinorDivisions(20))
	assert.Equal(t, 3, MinorDivisions(12))
	assert.Equal(t, 2, MinorDivisions(14))
	assert.Equal(t, 1, MinorDivisions(7))
	assert.Equal(t, 1, MinorDivisions(0))
}
