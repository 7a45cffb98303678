package layout

import (
	"fmt"
	"log/slog"
	"math"

	"scatterplot/internal/spec"
	"scatterplot/pkg/geometry"
)

const (
	// MarginFraction inflates the largest bound so no sample sits on the
	// end of an axis.
	MarginFraction = 0.1

	// DegenerateExtent is the smallest extent used for an axis whose
	// values are all identical.
	DegenerateExtent = 1.0

	stepEpsilon = 1e-9
)

// Axis is the resolved range of one axis in data space and, once fitted to
// a plot area, in pixel space.
type Axis struct {
	Side       Side
	Resolution int

	// Extent is the inflated largest absolute bound; Step = Extent/Resolution.
	Extent float64
	Step   float64

	// NegSteps and PosSteps count whole steps below and above zero.
	NegSteps int
	PosSteps int

	// Pixel geometry, valid after Fit.
	PixelsPerStep int
	Origin        int     // pixel coordinate of data zero
	Scale         float64 // pixels per data unit, negative for y
}

// Min returns the lowest data value on the axis.
func (a Axis) Min() float64 { return -float64(a.NegSteps) * a.Step }

// Max returns the highest data value on the axis.
func (a Axis) Max() float64 { return float64(a.PosSteps) * a.Step }

// Steps returns the total number of steps along the axis.
func (a Axis) Steps() int { return a.NegSteps + a.PosSteps }

// Span returns the pixel length of the axis.
func (a Axis) Span() int { return a.Steps() * a.PixelsPerStep }

// MinPixel returns the pixel coordinate of Min.
func (a Axis) MinPixel() int { return a.Origin + int(math.Round(a.Min()*a.Scale)) }

// MaxPixel returns the pixel coordinate of Max.
func (a Axis) MaxPixel() int { return a.Origin + int(math.Round(a.Max()*a.Scale)) }

// Marker returns the pixel coordinate of the i-th scale marker, counted in
// steps from zero (negative i lies below zero).
func (a Axis) Marker(i int) int {
	if a.Scale < 0 {
		return a.Origin - i*a.PixelsPerStep
	}
	return a.Origin + i*a.PixelsPerStep
}

// Ranges is the data-space result of range resolution.
type Ranges struct {
	Quadrant Quadrant
	X, Y     Axis
}

// AxisLayout is the fully resolved layout: ranges plus the plot area they
// were fitted into.
type AxisLayout struct {
	Quadrant Quadrant
	X, Y     Axis
	Area     geometry.RectInt
}

// OriginPixel returns the pixel position of data (0, 0).
func (l AxisLayout) OriginPixel() geometry.PointInt {
	return geometry.Pt(l.X.Origin, l.Y.Origin)
}

// ResolveRanges derives the quadrant layout and per-axis step geometry from
// the combined data bounds.
func ResolveRanges(b geometry.Bounds, xResolution, yResolution int) (Ranges, error) {
	if xResolution <= 0 {
		return Ranges{}, spec.NewValidationError("", "x_axis_resolution",
			fmt.Errorf("%w: resolution %d must be positive", spec.ErrInvalidLayout, xResolution))
	}
	if yResolution <= 0 {
		return Ranges{}, spec.NewValidationError("", "y_axis_resolution",
			fmt.Errorf("%w: resolution %d must be positive", spec.ErrInvalidLayout, yResolution))
	}

	x := resolveAxis(b.MinX, b.MaxX, xResolution)
	y := resolveAxis(b.MinY, b.MaxY, yResolution)
	r := Ranges{Quadrant: QuadrantOf(x.Side, y.Side), X: x, Y: y}

	slog.Debug("resolved ranges",
		"quadrant", r.Quadrant,
		"x_extent", x.Extent, "x_step", x.Step, "x_steps", fmt.Sprintf("-%d/+%d", x.NegSteps, x.PosSteps),
		"y_extent", y.Extent, "y_step", y.Step, "y_steps", fmt.Sprintf("-%d/+%d", y.NegSteps, y.PosSteps))
	return r, nil
}

func resolveAxis(lo, hi float64, resolution int) Axis {
	a := Axis{Side: SideOf(lo, hi), Resolution: resolution}

	if lo == hi {
		a.Extent = math.Max(DegenerateExtent, (1+MarginFraction)*math.Abs(lo))
	} else {
		a.Extent = (1 + MarginFraction) * math.Max(math.Abs(lo), math.Abs(hi))
	}
	a.Step = a.Extent / float64(resolution)

	switch a.Side {
	case Positive:
		a.PosSteps = resolution
	case Negative:
		a.NegSteps = resolution
	case Both:
		// the larger side gets the full resolution, the other side is
		// rounded outward to whole steps
		minor := func(v float64) int {
			n := int(math.Ceil((1+MarginFraction)*math.Abs(v)/a.Step - stepEpsilon))
			return max(1, min(n, resolution))
		}
		if math.Abs(hi) >= math.Abs(lo) {
			a.PosSteps = resolution
			a.NegSteps = minor(lo)
		} else {
			a.NegSteps = resolution
			a.PosSteps = minor(hi)
		}
	}
	return a
}

// Fit places the ranges inside the plot area. Each axis gets a whole number
// of pixels per step, so every scale marker lands on an exact pixel. The
// axis is anchored on its zero side: one-sided positive and two-sided axes
// start at the left or bottom edge, negative-only axes end at the right or
// top edge.
func Fit(r Ranges, area geometry.RectInt) (AxisLayout, error) {
	x, y := r.X, r.Y

	if x.Steps() <= 0 || y.Steps() <= 0 || x.Step <= 0 || y.Step <= 0 {
		return AxisLayout{}, spec.NewValidationError("", "ranges",
			fmt.Errorf("%w: ranges were not resolved", spec.ErrInvalidLayout))
	}

	x.PixelsPerStep = (area.Width - 1) / x.Steps()
	y.PixelsPerStep = (area.Height - 1) / y.Steps()
	if x.PixelsPerStep <= 0 {
		return AxisLayout{}, spec.NewValidationError("", "canvas_pixel_size",
			fmt.Errorf("%w: plot width %d cannot hold %d x steps", spec.ErrInvalidLayout, area.Width, x.Steps()))
	}
	if y.PixelsPerStep <= 0 {
		return AxisLayout{}, spec.NewValidationError("", "canvas_pixel_size",
			fmt.Errorf("%w: plot height %d cannot hold %d y steps", spec.ErrInvalidLayout, area.Height, y.Steps()))
	}

	left, right := area.X, area.Right()-1
	top, bottom := area.Y, area.Bottom()-1

	if x.Side == Negative {
		x.Origin = right
	} else {
		x.Origin = left + x.NegSteps*x.PixelsPerStep
	}
	if y.Side == Negative {
		y.Origin = top
	} else {
		y.Origin = bottom - y.NegSteps*y.PixelsPerStep
	}

	x.Scale = float64(x.PixelsPerStep) / x.Step
	y.Scale = -float64(y.PixelsPerStep) / y.Step

	l := AxisLayout{Quadrant: r.Quadrant, X: x, Y: y, Area: area}
	slog.Debug("fitted layout",
		"area", fmt.Sprintf("%dx%d+%d+%d", area.Width, area.Height, area.X, area.Y),
		"origin", fmt.Sprintf("(%d,%d)", x.Origin, y.Origin),
		"x_px_per_step", x.PixelsPerStep, "y_px_per_step", y.PixelsPerStep)
	return l, nil
}
