// Package curve evaluates the analytic best-fit families that can be
// overlaid on a scatter chart.
package curve

import (
	"fmt"
	"math"
	"sort"

	"scatterplot/pkg/colorutil"
)

// Curve is a best-fit function y = f(x). The set of implementations is
// closed; callers switch on the concrete type when they need coefficients.
type Curve interface {
	// Eval returns f(x). The result may be NaN or infinite.
	Eval(x float64) float64

	// Name returns the family name used in logs and legends.
	Name() string

	// LineColour returns the colour the curve is drawn in.
	LineColour() colorutil.Colour

	sealed()
}

// Linear is y = gradient·x + y_intercept.
type Linear struct {
	Gradient   float64
	YIntercept float64
	Colour     colorutil.Colour
}

func (c Linear) Eval(x float64) float64 { return c.Gradient*x + c.YIntercept }

func (c Linear) Name() string                 { return "linear" }
func (c Linear) LineColour() colorutil.Colour { return c.Colour }
func (Linear) sealed()                        {}

// Quadratic is y = intercept + linear·x + quadratic·x².
type Quadratic struct {
	Intercept      float64
	LinearCoeff    float64
	QuadraticCoeff float64
	Colour         colorutil.Colour
}

func (c Quadratic) Eval(x float64) float64 {
	return c.Intercept + c.LinearCoeff*x + c.QuadraticCoeff*x*x
}

func (c Quadratic) Name() string                 { return "quadratic" }
func (c Quadratic) LineColour() colorutil.Colour { return c.Colour }
func (Quadratic) sealed()                        {}

// Cubic is y = intercept + linear·x + quadratic·x² + cubic·x³.
type Cubic struct {
	Intercept      float64
	LinearCoeff    float64
	QuadraticCoeff float64
	CubicCoeff     float64
	Colour         colorutil.Colour
}

func (c Cubic) Eval(x float64) float64 {
	return c.Intercept + c.LinearCoeff*x + c.QuadraticCoeff*x*x + c.CubicCoeff*x*x*x
}

func (c Cubic) Name() string                 { return "cubic" }
func (c Cubic) LineColour() colorutil.Colour { return c.Colour }
func (Cubic) sealed()                        {}

// Term is one coefficient·x^power summand of a Polynomial.
type Term struct {
	Power       int
	Coefficient float64
}

// Polynomial is y = Σ coefficient·x^power over an arbitrary set of
// non-negative powers. Terms are kept sorted by power so evaluation sums in
// a fixed order and stays bit-for-bit reproducible.
type Polynomial struct {
	Terms  []Term
	Colour colorutil.Colour
}

// NewPolynomial builds a Polynomial from a power -> coefficient mapping.
func NewPolynomial(coefficients map[int]float64, colour colorutil.Colour) (Polynomial, error) {
	terms := make([]Term, 0, len(coefficients))
	for p, c := range coefficients {
		if p < 0 {
			return Polynomial{}, fmt.Errorf("polynomial power %d is negative", p)
		}
		terms = append(terms, Term{Power: p, Coefficient: c})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Power < terms[j].Power })
	return Polynomial{Terms: terms, Colour: colour}, nil
}

func (c Polynomial) Eval(x float64) float64 {
	var y float64
	for _, t := range c.Terms {
		y += t.Coefficient * math.Pow(x, float64(t.Power))
	}
	return y
}

// Degree returns the highest power with a non-zero coefficient.
func (c Polynomial) Degree() int {
	d := 0
	for _, t := range c.Terms {
		if t.Coefficient != 0 && t.Power > d {
			d = t.Power
		}
	}
	return d
}

func (c Polynomial) Name() string                 { return "polynomial" }
func (c Polynomial) LineColour() colorutil.Colour { return c.Colour }
func (Polynomial) sealed()                        {}

// Exponential is y = constant·base^(power·x) + vertical_shift.
type Exponential struct {
	Constant      float64
	Base          float64
	Power         float64
	VerticalShift float64
	Colour        colorutil.Colour
}

func (c Exponential) Eval(x float64) float64 {
	return c.Constant*math.Pow(c.Base, c.Power*x) + c.VerticalShift
}

func (c Exponential) Name() string                 { return "exponential" }
func (c Exponential) LineColour() colorutil.Colour { return c.Colour }
func (Exponential) sealed()                        {}

// Gaussian is y = 1/(variance·√(2π)) · e^(−(x−expected)²/(2·variance²)).
// Variance plays the role of the standard deviation in the usual form.
type Gaussian struct {
	Variance      float64
	ExpectedValue float64
	Colour        colorutil.Colour
}

func (c Gaussian) Eval(x float64) float64 {
	d := x - c.ExpectedValue
	return 1 / (c.Variance * math.Sqrt(2*math.Pi)) * math.Exp(-(d*d)/(2*c.Variance*c.Variance))
}

func (c Gaussian) Name() string                 { return "gaussian" }
func (c Gaussian) LineColour() colorutil.Colour { return c.Colour }
func (Gaussian) sealed()                        {}

// Sine is y = amplitude·sin(period·x + phase_shift) + vertical_shift.
type Sine struct {
	Amplitude     float64
	Period        float64
	PhaseShift    float64
	VerticalShift float64
	Colour        colorutil.Colour
}

func (c Sine) Eval(x float64) float64 {
	return c.Amplitude*math.Sin(c.Period*x+c.PhaseShift) + c.VerticalShift
}

func (c Sine) Name() string                 { return "sine" }
func (c Sine) LineColour() colorutil.Colour { return c.Colour }
func (Sine) sealed()                        {}

// Cosine is y = amplitude·cos(period·x + phase_shift) + vertical_shift.
type Cosine struct {
	Amplitude     float64
	Period        float64
	PhaseShift    float64
	VerticalShift float64
	Colour        colorutil.Colour
}

func (c Cosine) Eval(x float64) float64 {
	return c.Amplitude*math.Cos(c.Period*x+c.PhaseShift) + c.VerticalShift
}

func (c Cosine) Name() string                 { return "cosine" }
func (c Cosine) LineColour() colorutil.Colour { return c.Colour }
func (Cosine) sealed()                        {}
