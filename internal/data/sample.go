// Package data holds the numeric samples of each data set and reads them
// from delimited text or spreadsheet files.
package data

import (
	"fmt"
	"math"

	"scatterplot/internal/spec"
	"scatterplot/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Sample is one plotted point with optional uncertainties.
type Sample struct {
	X, Y float64
	XErr *float64
	YErr *float64
}

// Point returns the sample position.
func (s Sample) Point() geometry.Point2D {
	return geometry.Point2D{X: s.X, Y: s.Y}
}

// SampleSet is the ordered samples of one data set.
type SampleSet struct {
	Name    string
	Samples []Sample
}

// Len returns the number of samples.
func (s SampleSet) Len() int { return len(s.Samples) }

// XS returns the x values in order.
func (s SampleSet) XS() []float64 {
	xs := make([]float64, len(s.Samples))
	for i, p := range s.Samples {
		xs[i] = p.X
	}
	return xs
}

// YS returns the y values in order.
func (s SampleSet) YS() []float64 {
	ys := make([]float64, len(s.Samples))
	for i, p := range s.Samples {
		ys[i] = p.Y
	}
	return ys
}

// Validate checks that the set has samples, that every coordinate is
// finite and that every uncertainty is finite and non-negative.
func (s SampleSet) Validate() error {
	if len(s.Samples) == 0 {
		return spec.NewValidationError(s.Name, "data_path",
			fmt.Errorf("%w: data set has no samples", spec.ErrInvalidLayout))
	}
	for i, p := range s.Samples {
		if !p.Point().IsFinite() {
			return spec.NewValidationError(s.Name, "samples",
				fmt.Errorf("%w: sample %d (%v, %v) is not finite", spec.ErrInvalidField, i+1, p.X, p.Y))
		}
		if p.XErr != nil && (!finite(*p.XErr) || *p.XErr < 0) {
			return spec.NewValidationError(s.Name, "samples",
				fmt.Errorf("%w: sample %d x uncertainty %v", spec.ErrInvalidField, i+1, *p.XErr))
		}
		if p.YErr != nil && (!finite(*p.YErr) || *p.YErr < 0) {
			return spec.NewValidationError(s.Name, "samples",
				fmt.Errorf("%w: sample %d y uncertainty %v", spec.ErrInvalidField, i+1, *p.YErr))
		}
	}
	return nil
}

// Bounds returns the combined x/y bounds of every sample in sets.
// Uncertainties do not widen the bounds. ok is false when there are no
// samples at all.
func Bounds(sets ...SampleSet) (b geometry.Bounds, ok bool) {
	for _, s := range sets {
		if s.Len() == 0 {
			continue
		}
		xs, ys := s.XS(), s.YS()
		sb := geometry.Bounds{
			MinX: floats.Min(xs), MaxX: floats.Max(xs),
			MinY: floats.Min(ys), MaxY: floats.Max(ys),
		}
		if !ok {
			b, ok = sb, true
			continue
		}
		b = b.Union(sb)
	}
	return b, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
