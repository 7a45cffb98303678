package layout

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"scatterplot/internal/spec"
	"scatterplot/pkg/geometry"
)

// Pixel constants of the chart frame.
const (
	CanvasBorder   = 10
	MajorTickShort = 10
	MajorTickLong  = 15
	MinorTick      = 5
	LabelGap       = 4

	// LegendPadding is the space between the legend box edge and its rows.
	LegendPadding = 6
	// LegendFitLine is the length of the best-fit sample line in a legend row.
	LegendFitLine = 20

	minFontSize = 6.0
	phi         = 1.618033988749895
)

// FontSizes are the glyph heights in pixels for each kind of text.
type FontSizes struct {
	Title  float64
	Axis   float64
	Tick   float64
	Legend float64
}

// NewFontSizes scales text with the canvas width: the title is
// 1.5·√width/φ and everything else is half of that.
func NewFontSizes(width int) FontSizes {
	title := math.Max(1.5*math.Sqrt(float64(width))/phi, minFontSize)
	axis := math.Max(title/2, minFontSize)
	return FontSizes{Title: title, Axis: axis, Tick: axis, Legend: axis}
}

// TextExtent is the pixel size of a measured string.
type TextExtent struct {
	Width   int
	Ascent  int
	Descent int
}

// Height returns Ascent + Descent.
func (e TextExtent) Height() int { return e.Ascent + e.Descent }

// Measurer reports the extent of text drawn at a given size.
type Measurer interface {
	Measure(text string, size float64) TextExtent
}

// FrameInput is everything besides the ranges that decides margins.
type FrameInput struct {
	Width, Height int
	Title         string
	XLabel        string
	YLabel        string

	// LegendNames lists the legend rows in order; nil hides the legend.
	LegendNames []string
	// SwatchSize is the largest symbol diameter shown in the legend.
	SwatchSize int
	// LegendFits reports whether any row shows a best-fit line.
	LegendFits bool
}

// Frame is the pixel layout of everything around the plot area.
type Frame struct {
	Canvas geometry.RectInt
	Area   geometry.RectInt
	Fonts  FontSizes

	// Bands reserved for text; empty when the text is empty.
	Title  geometry.RectInt
	XLabel geometry.RectInt
	YLabel geometry.RectInt

	Legend          geometry.RectInt
	LegendCorner    Corner
	LegendRowHeight int
}

// HasLegend reports whether a legend box was reserved.
func (f Frame) HasLegend() bool { return !f.Legend.Empty() }

// ComputeFrame reserves margins for the title, axis labels, tick labels and
// legend around the plot area. Every band is sized from measured text, so
// the frame scales with the canvas.
func ComputeFrame(in FrameInput, r Ranges, m Measurer) (Frame, error) {
	w, h := in.Width, in.Height
	f := Frame{
		Canvas: geometry.NewRectInt(0, 0, w, h),
		Fonts:  NewFontSizes(w),
	}
	xSide, ySide := r.X.Side, r.Y.Side

	top, bottom, left, right := CanvasBorder, CanvasBorder, CanvasBorder, CanvasBorder

	// bands are stacked from the canvas edge inwards
	takeTop := func(height, gap int) geometry.RectInt {
		band := geometry.NewRectInt(0, top, w, height)
		top += height + gap
		return band
	}
	takeBottom := func(height, gap int) geometry.RectInt {
		band := geometry.NewRectInt(0, h-bottom-height, w, height)
		bottom += height + gap
		return band
	}

	if in.Title != "" {
		f.Title = takeTop(m.Measure(in.Title, f.Fonts.Title).Height(), CanvasBorder)
	}

	var xLabelH, yLabelH int
	if in.XLabel != "" {
		xLabelH = m.Measure(in.XLabel, f.Fonts.Axis).Height()
	}
	if in.YLabel != "" {
		yLabelH = m.Measure(in.YLabel, f.Fonts.Axis).Height()
	}

	// the y label sits at the far end of the y axis, the x label on the
	// side of the x axis away from the data
	if ySide == Negative {
		if xLabelH > 0 {
			f.XLabel = takeTop(xLabelH, LabelGap)
		}
		if yLabelH > 0 {
			f.YLabel = takeBottom(yLabelH, LabelGap)
		}
	} else {
		if yLabelH > 0 {
			f.YLabel = takeTop(yLabelH, LabelGap)
		}
		if xLabelH > 0 {
			f.XLabel = takeBottom(xLabelH, LabelGap)
		}
	}

	xTicks := widestTick(Ticks(r.X), f.Fonts.Tick, m)
	yTicks := widestTick(Ticks(r.Y), f.Fonts.Tick, m)

	switch ySide {
	case Positive:
		bottom += MajorTickLong + LabelGap + xTicks.Height()
	case Negative:
		top += MajorTickLong + LabelGap + xTicks.Height()
	}

	if in.LegendNames != nil {
		f.LegendCorner = LegendCorner(r.Quadrant)
		f.LegendRowHeight, f.Legend = legendBox(in, f.Fonts.Legend, m)
		strip := f.Legend.Width + CanvasBorder
		if f.LegendCorner.Right() {
			f.Legend.X = w - right - f.Legend.Width
			right += strip
		} else {
			f.Legend.X = left
			left += strip
		}
	}

	switch xSide {
	case Positive:
		left += MajorTickLong + LabelGap + yTicks.Width
	case Negative:
		right += MajorTickLong + LabelGap + yTicks.Width
	}

	// end tick labels are centred on their marker and overhang the plot
	overhangX := CanvasBorder + (xTicks.Width+1)/2
	overhangY := CanvasBorder + (yTicks.Height()+1)/2
	left = max(left, overhangX)
	right = max(right, overhangX)
	top = max(top, overhangY)
	bottom = max(bottom, overhangY)

	f.Area = geometry.NewRectInt(left, top, w-left-right, h-top-bottom)
	if f.Area.Width < 2 || f.Area.Height < 2 {
		return Frame{}, spec.NewValidationError("", "canvas_pixel_size",
			fmt.Errorf("%w: canvas %dx%d leaves no room for the plot", spec.ErrInvalidLayout, w, h))
	}

	if f.HasLegend() {
		if f.Legend.Height > f.Area.Height {
			return Frame{}, spec.NewValidationError("", "has_legend",
				fmt.Errorf("%w: %d legend rows need %d px but the plot is %d px high",
					spec.ErrInvalidLayout, len(in.LegendNames), f.Legend.Height, f.Area.Height))
		}
		if f.LegendCorner.Top() {
			f.Legend.Y = f.Area.Y
		} else {
			f.Legend.Y = f.Area.Bottom() - f.Legend.Height
		}
	}

	slog.Debug("computed frame",
		"title_font", f.Fonts.Title, "axis_font", f.Fonts.Axis,
		"area", fmt.Sprintf("%dx%d+%d+%d", f.Area.Width, f.Area.Height, f.Area.X, f.Area.Y),
		"legend_corner", f.LegendCorner, "legend", f.HasLegend())
	return f, nil
}

func legendBox(in FrameInput, size float64, m Measurer) (rowHeight int, box geometry.RectInt) {
	textW, textH := 0, 0
	for _, name := range in.LegendNames {
		e := m.Measure(name, size)
		textW = max(textW, e.Width)
		textH = max(textH, e.Height())
	}
	swatch := max(in.SwatchSize, 1)
	rowHeight = max(textH, swatch) + LabelGap

	width := LegendPadding + swatch + LabelGap + textW + LegendPadding
	if in.LegendFits {
		width += LabelGap + LegendFitLine
	}
	height := 2*LegendPadding + len(in.LegendNames)*rowHeight
	return rowHeight, geometry.NewRectInt(0, 0, width, height)
}

// widestTick measures every label as if it were negative, so mirrored data
// reserve the same band and keep the same plot size.
func widestTick(ticks []Tick, size float64, m Measurer) TextExtent {
	var widest TextExtent
	for _, t := range ticks {
		e := m.Measure("-"+strings.TrimPrefix(t.Label, "-"), size)
		widest.Width = max(widest.Width, e.Width)
		widest.Ascent = max(widest.Ascent, e.Ascent)
		widest.Descent = max(widest.Descent, e.Descent)
	}
	return widest
}

// Tick is one scale marker along an axis.
type Tick struct {
	// Index counts steps from zero, negative below zero.
	Index int
	Value float64
	Label string
}

// Ticks lists the scale markers of an axis from its minimum to its maximum.
// Zero is omitted since the origin carries no label.
func Ticks(a Axis) []Tick {
	ticks := make([]Tick, 0, a.Steps())
	for i := -a.NegSteps; i <= a.PosSteps; i++ {
		if i == 0 {
			continue
		}
		v := float64(i) * a.Step
		ticks = append(ticks, Tick{Index: i, Value: v, Label: FormatTick(v, a.Step)})
	}
	return ticks
}

// maxTickDecimals is the longest fixed-point tick label; finer steps switch
// to exponent notation.
const maxTickDecimals = 6

// FormatTick prints v with enough digits to tell neighbouring markers
// apart, dropping trailing zeros.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 {
		decimals = int(-math.Floor(math.Log10(step))) + 1
	}
	if decimals > maxTickDecimals && v != 0 {
		// significant digits of v down to one place below the step
		digits := int(math.Floor(math.Log10(math.Abs(v)))) + decimals
		return formatExp(v, max(digits, 0))
	}

	s := strconv.FormatFloat(v, 'f', max(decimals, 0), 64)
	s = trimFraction(s)
	if s == "-0" {
		s = "0"
	}
	return s
}

func formatExp(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	return trimFraction(mantissa) + "e" + exp
}

func trimFraction(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// MinorDivisions returns how many parts each step is split into by minor
// markers, or 1 when the step is too short to subdivide. Divisions must
// split the step into whole pixels at least 4 apart.
func MinorDivisions(pixelsPerStep int) int {
	for _, d := range []int{10, 5, 4, 3, 2} {
		if pixelsPerStep%d == 0 && pixelsPerStep/d >= 4 {
			return d
		}
	}
	return 1
}
