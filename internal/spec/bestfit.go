package spec

import (
	"fmt"
	"strconv"
	"strings"

	"scatterplot/internal/curve"
	"scatterplot/pkg/colorutil"
)

// BestFitSpec is the configuration form of a best-fit curve. Type selects
// the family and only that family's coefficient fields are read.
type BestFitSpec struct {
	Type   CurveType        `json:"type" yaml:"type" toml:"type"`
	Colour colorutil.Colour `json:"colour" yaml:"colour" toml:"colour"`

	// Linear
	Gradient   float64 `json:"gradient,omitempty" yaml:"gradient,omitempty" toml:"gradient,omitempty"`
	YIntercept float64 `json:"y_intercept,omitempty" yaml:"y_intercept,omitempty" toml:"y_intercept,omitempty"`

	// Quadratic, Cubic
	Intercept      float64 `json:"intercept,omitempty" yaml:"intercept,omitempty" toml:"intercept,omitempty"`
	LinearCoeff    float64 `json:"linear_coeff,omitempty" yaml:"linear_coeff,omitempty" toml:"linear_coeff,omitempty"`
	QuadraticCoeff float64 `json:"quadratic_coeff,omitempty" yaml:"quadratic_coeff,omitempty" toml:"quadratic_coeff,omitempty"`
	CubicCoeff     float64 `json:"cubic_coeff,omitempty" yaml:"cubic_coeff,omitempty" toml:"cubic_coeff,omitempty"`

	// Polynomial: power -> coefficient. Keys are non-negative integers.
	Coefficients map[string]float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty" toml:"coefficients,omitempty"`

	// Exponential
	Constant float64 `json:"constant,omitempty" yaml:"constant,omitempty" toml:"constant,omitempty"`
	Base     float64 `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	Power    float64 `json:"power,omitempty" yaml:"power,omitempty" toml:"power,omitempty"`

	// Gaussian
	Variance      float64 `json:"variance,omitempty" yaml:"variance,omitempty" toml:"variance,omitempty"`
	ExpectedValue float64 `json:"expected_value,omitempty" yaml:"expected_value,omitempty" toml:"expected_value,omitempty"`

	// Sine, Cosine
	Amplitude  float64 `json:"amplitude,omitempty" yaml:"amplitude,omitempty" toml:"amplitude,omitempty"`
	Period     float64 `json:"period,omitempty" yaml:"period,omitempty" toml:"period,omitempty"`
	PhaseShift float64 `json:"phase_shift,omitempty" yaml:"phase_shift,omitempty" toml:"phase_shift,omitempty"`

	// Exponential, Sine, Cosine
	VerticalShift float64 `json:"vertical_shift,omitempty" yaml:"vertical_shift,omitempty" toml:"vertical_shift,omitempty"`

	// Fit computes the coefficients from the data set by least squares
	// instead of reading them. Degree applies to polynomial only.
	Fit    bool `json:"fit,omitempty" yaml:"fit,omitempty" toml:"fit,omitempty"`
	Degree int  `json:"degree,omitempty" yaml:"degree,omitempty" toml:"degree,omitempty"`
}

// Curve converts the configuration into an evaluable curve. For Fit specs
// the result carries zero coefficients and serves as the template passed to
// curve.Fit.
func (b *BestFitSpec) Curve() (curve.Curve, error) {
	switch b.Type {
	case CurveLinear:
		return curve.Linear{Gradient: b.Gradient, YIntercept: b.YIntercept, Colour: b.Colour}, nil
	case CurveQuadratic:
		return curve.Quadratic{
			Intercept:      b.Intercept,
			LinearCoeff:    b.LinearCoeff,
			QuadraticCoeff: b.QuadraticCoeff,
			Colour:         b.Colour,
		}, nil
	case CurveCubic:
		return curve.Cubic{
			Intercept:      b.Intercept,
			LinearCoeff:    b.LinearCoeff,
			QuadraticCoeff: b.QuadraticCoeff,
			CubicCoeff:     b.CubicCoeff,
			Colour:         b.Colour,
		}, nil
	case CurvePolynomial:
		coefficients := make(map[int]float64, len(b.Coefficients))
		for k, v := range b.Coefficients {
			p, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil {
				return nil, fmt.Errorf("polynomial power %q is not an integer", k)
			}
			if _, dup := coefficients[p]; dup {
				return nil, fmt.Errorf("polynomial power %d given twice", p)
			}
			coefficients[p] = v
		}
		return curve.NewPolynomial(coefficients, b.Colour)
	case CurveExponential:
		return curve.Exponential{
			Constant:      b.Constant,
			Base:          b.Base,
			Power:         b.Power,
			VerticalShift: b.VerticalShift,
			Colour:        b.Colour,
		}, nil
	case CurveGaussian:
		return curve.Gaussian{Variance: b.Variance, ExpectedValue: b.ExpectedValue, Colour: b.Colour}, nil
	case CurveSine:
		return curve.Sine{
			Amplitude:     b.Amplitude,
			Period:        b.Period,
			PhaseShift:    b.PhaseShift,
			VerticalShift: b.VerticalShift,
			Colour:        b.Colour,
		}, nil
	case CurveCosine:
		return curve.Cosine{
			Amplitude:     b.Amplitude,
			Period:        b.Period,
			PhaseShift:    b.PhaseShift,
			VerticalShift: b.VerticalShift,
			Colour:        b.Colour,
		}, nil
	default:
		return nil, fmt.Errorf("unknown best fit type %d", int(b.Type))
	}
}

func (b *BestFitSpec) validate(dataSet string) error {
	if b.Colour != colorutil.ColourUnset && !b.Colour.Valid() {
		return invalid(dataSet, "best_fit.colour", ErrInvalidField, "unknown colour %d", int(b.Colour))
	}
	if b.Fit {
		if !b.Type.Fittable() {
			return invalid(dataSet, "best_fit.fit", ErrInvalidField, "%s curves cannot be fitted", b.Type)
		}
		if b.Type == CurvePolynomial && b.Degree < 0 {
			return invalid(dataSet, "best_fit.degree", ErrInvalidField, "degree %d is negative", b.Degree)
		}
	}
	if _, err := b.Curve(); err != nil {
		return NewValidationError(dataSet, "best_fit", fmt.Errorf("%w: %w", ErrInvalidField, err))
	}
	return nil
}
