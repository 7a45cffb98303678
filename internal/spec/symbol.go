package spec

import (
	"fmt"
	"strings"
)

// Symbol is the marker drawn at each sample.
type Symbol int

const (
	SymbolCross Symbol = iota
	SymbolCircle
	SymbolTriangle
	SymbolSquare
	SymbolPoint
)

var symbolNames = [...]string{"Cross", "Circle", "Triangle", "Square", "Point"}

func (s Symbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
	return symbolNames[s]
}

// Valid reports whether s is a known symbol.
func (s Symbol) Valid() bool {
	return s >= SymbolCross && int(s) < len(symbolNames)
}

// ParseSymbol looks a symbol up by name, ignoring case.
func ParseSymbol(name string) (Symbol, error) {
	n := strings.TrimSpace(name)
	for i, sn := range symbolNames {
		if strings.EqualFold(n, sn) {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("unknown symbol %q (valid: %s)", name, strings.Join(symbolNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid symbol %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	v, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CurveType selects the best-fit family.
type CurveType int

const (
	CurveLinear CurveType = iota
	CurveQuadratic
	CurveCubic
	CurvePolynomial
	CurveExponential
	CurveGaussian
	CurveSine
	CurveCosine
)

var curveTypeNames = [...]string{
	"linear", "quadratic", "cubic", "polynomial", "exponential", "gaussian", "sine", "cosine",
}

func (t CurveType) String() string {
	if t < CurveLinear || int(t) >= len(curveTypeNames) {
		return fmt.Sprintf("CurveType(%d)", int(t))
	}
	return curveTypeNames[t]
}

// Fittable reports whether coefficients of this family can be computed by
// least squares.
func (t CurveType) Fittable() bool {
	switch t {
	case CurveLinear, CurveQuadratic, CurveCubic, CurvePolynomial:
		return true
	}
	return false
}

// ParseCurveType looks a best-fit family up by name, ignoring case.
// "generic_polynomial" is accepted for polynomial.
func ParseCurveType(name string) (CurveType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "generic_polynomial" || n == "genericpolynomial" {
		return CurvePolynomial, nil
	}
	for i, cn := range curveTypeNames {
		if n == cn {
			return CurveType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown best fit type %q (valid: %s)", name, strings.Join(curveTypeNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (t CurveType) MarshalText() ([]byte, error) {
	if t < CurveLinear || int(t) >= len(curveTypeNames) {
		return nil, fmt.Errorf("invalid best fit type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CurveType) UnmarshalText(text []byte) error {
	v, err := ParseCurveType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
