package curve

import (
	"scatterplot/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Sample evaluates c at n evenly spaced x values across [xMin, xMax] and
// returns the finite results as runs of consecutive points. A non-finite
// value ends the current run, so a polyline drawn through each run breaks
// instead of jumping across the gap. Runs shorter than two points are
// dropped since they cannot form a segment.
func Sample(c Curve, xMin, xMax float64, n int) [][]geometry.Point2D {
	if n < 2 {
		n = 2
	}
	xs := floats.Span(make([]float64, n), xMin, xMax)

	var runs [][]geometry.Point2D
	var current []geometry.Point2D
	flush := func() {
		if len(current) >= 2 {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, x := range xs {
		p := geometry.Point2D{X: x, Y: c.Eval(x)}
		if !p.IsFinite() {
			flush()
			continue
		}
		current = append(current, p)
	}
	flush()

	return runs
}
