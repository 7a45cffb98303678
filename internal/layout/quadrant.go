// Package layout resolves axis ranges, the active quadrants and the pixel
// geometry of a chart from its data.
package layout

import "fmt"

// Side describes which signs of an axis carry data.
type Side int

const (
	// Positive axes run from zero upwards.
	Positive Side = iota
	// Negative axes run from zero downwards.
	Negative
	// Both axes cross zero.
	Both
)

var sideNames = [...]string{"Positive", "Negative", "Both"}

func (s Side) String() string {
	if s < Positive || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// SideOf classifies an axis from its data bounds. Zero belongs to the
// positive side, so an axis touching zero from above stays one-sided.
func SideOf(min, max float64) Side {
	switch {
	case min >= 0:
		return Positive
	case max <= 0:
		return Negative
	default:
		return Both
	}
}

// Quadrant is the set of cartesian quadrants that must be drawn.
type Quadrant int

const (
	TopRight    Quadrant = iota // x ≥ 0, y ≥ 0
	TopLeft                     // x ≤ 0, y ≥ 0
	BottomRight                 // x ≥ 0, y ≤ 0
	BottomLeft                  // x ≤ 0, y ≤ 0
	TopPair                     // x crosses zero, y ≥ 0
	BottomPair                  // x crosses zero, y ≤ 0
	LeftPair                    // x ≤ 0, y crosses zero
	RightPair                   // x ≥ 0, y crosses zero
	All                         // both axes cross zero
)

var quadrantNames = [...]string{
	"TopRight", "TopLeft", "BottomRight", "BottomLeft",
	"TopPair", "BottomPair", "LeftPair", "RightPair", "All",
}

func (q Quadrant) String() string {
	if q < TopRight || int(q) >= len(quadrantNames) {
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
	return quadrantNames[q]
}

// quadrants is indexed [xSide][ySide].
var quadrants = [3][3]Quadrant{
	Positive: {Positive: TopRight, Negative: BottomRight, Both: RightPair},
	Negative: {Positive: TopLeft, Negative: BottomLeft, Both: LeftPair},
	Both:     {Positive: TopPair, Negative: BottomPair, Both: All},
}

// QuadrantOf returns the layout for the given axis sides.
func QuadrantOf(x, y Side) Quadrant {
	return quadrants[x][y]
}

// Sides is the inverse of QuadrantOf.
func (q Quadrant) Sides() (x, y Side) {
	for xs := range quadrants {
		for ys, v := range quadrants[xs] {
			if v == q {
				return Side(xs), Side(ys)
			}
		}
	}
	return Positive, Positive
}

// Corner is a corner of the plot area.
type Corner int

const (
	CornerRightTop Corner = iota
	CornerRightBottom
	CornerLeftTop
	CornerLeftBottom
)

func (c Corner) String() string {
	switch c {
	case CornerRightTop:
		return "RightTop"
	case CornerRightBottom:
		return "RightBottom"
	case CornerLeftTop:
		return "LeftTop"
	case CornerLeftBottom:
		return "LeftBottom"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// Right reports whether the corner is on the right side of the canvas.
func (c Corner) Right() bool { return c == CornerRightTop || c == CornerRightBottom }

// Top reports whether the corner is at the top of the canvas.
func (c Corner) Top() bool { return c == CornerRightTop || c == CornerLeftTop }

// LegendCorner picks where the legend goes for a quadrant layout. The
// legend sits beside the plot on the side away from the y axis where
// possible, level with the data.
func LegendCorner(q Quadrant) Corner {
	switch q {
	case BottomRight, BottomPair:
		return CornerRightBottom
	case TopLeft, LeftPair:
		return CornerLeftTop
	case BottomLeft:
		return CornerLeftBottom
	default:
		return CornerRightTop
	}
}
