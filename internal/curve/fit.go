package curve

import (
	"fmt"

	"scatterplot/pkg/colorutil"

	"gonum.org/v1/gonum/mat"
)

// FitPolynomial computes least-squares coefficients for a polynomial of the
// given degree through the points (xs[i], ys[i]).
func FitPolynomial(xs, ys []float64, degree int, colour colorutil.Colour) (Polynomial, error) {
	if degree < 0 {
		return Polynomial{}, fmt.Errorf("polynomial degree %d is negative", degree)
	}
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("point count mismatch: %d x values vs %d y values", len(xs), len(ys))
	}
	n := len(xs)
	cols := degree + 1
	if n < cols {
		return Polynomial{}, fmt.Errorf("need at least %d points for degree %d, got %d", cols, degree, n)
	}
	if distinct(xs) < cols {
		return Polynomial{}, fmt.Errorf("need at least %d distinct x values for degree %d", cols, degree)
	}

	// Vandermonde system A·c = y
	A := mat.NewDense(n, cols, nil)
	B := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := 1.0
		for j := 0; j < cols; j++ {
			A.Set(i, j, v)
			v *= xs[i]
		}
		B.SetVec(i, ys[i])
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return Polynomial{}, fmt.Errorf("least squares solve failed: %w", err)
	}

	coefficients := make(map[int]float64, cols)
	for j := 0; j < cols; j++ {
		coefficients[j] = params.AtVec(j)
	}
	return NewPolynomial(coefficients, colour)
}

// Fit fits a curve of the same family as template to the points. Only the
// polynomial families (Linear, Quadratic, Cubic, Polynomial) can be fitted;
// the degree of a Polynomial template is taken from degree.
func Fit(template Curve, xs, ys []float64, degree int) (Curve, error) {
	colour := template.LineColour()
	switch template.(type) {
	case Linear:
		p, err := FitPolynomial(xs, ys, 1, colour)
		if err != nil {
			return nil, err
		}
		return Linear{YIntercept: coeff(p, 0), Gradient: coeff(p, 1), Colour: colour}, nil
	case Quadratic:
		p, err := FitPolynomial(xs, ys, 2, colour)
		if err != nil {
			return nil, err
		}
		return Quadratic{Intercept: coeff(p, 0), LinearCoeff: coeff(p, 1), QuadraticCoeff: coeff(p, 2), Colour: colour}, nil
	case Cubic:
		p, err := FitPolynomial(xs, ys, 3, colour)
		if err != nil {
			return nil, err
		}
		return Cubic{
			Intercept:      coeff(p, 0),
			LinearCoeff:    coeff(p, 1),
			QuadraticCoeff: coeff(p, 2),
			CubicCoeff:     coeff(p, 3),
			Colour:         colour,
		}, nil
	case Polynomial:
		return FitPolynomial(xs, ys, degree, colour)
	default:
		return nil, fmt.Errorf("%s curves cannot be fitted, supply coefficients instead", template.Name())
	}
}

func coeff(p Polynomial, power int) float64 {
	for _, t := range p.Terms {
		if t.Power == power {
			return t.Coefficient
		}
	}
	return 0
}

func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
