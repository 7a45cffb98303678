// Package geometry provides the point, rectangle and transform types shared
// by the layout, scene and render packages.
package geometry

import (
	"image"
	"math"
)

// Point2D is a point in data space or fractional pixel space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsFinite reports whether both coordinates are finite.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt is a pixel position.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for PointInt{x, y}.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p PointInt) Add(dx, dy int) PointInt {
	return PointInt{X: p.X + dx, Y: p.Y + dy}
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// RectInt is a pixel rectangle. Width and Height are exclusive extents, so
// the last pixel column inside the rectangle is X+Width-1.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate just past the right edge.
func (r RectInt) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r RectInt) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the pixel lies inside the rectangle.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Inset shrinks the rectangle by n pixels on every side.
func (r RectInt) Inset(n int) RectInt {
	return RectInt{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
}

// ImageRect converts to an image.Rectangle.
func (r RectInt) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other), so
// other is applied first.
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-12 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}

// RegularPolygon returns the n vertices of a regular polygon centred on
// (cx, cy) with the given circumradius. The first vertex sits at angle
// rotation (radians, measured clockwise from the positive x axis in pixel
// space).
func RegularPolygon(cx, cy, radius float64, n int, rotation float64) []Point2D {
	points := make([]Point2D, n)
	for i := 0; i < n; i++ {
		angle := rotation + float64(i)*2.0*math.Pi/float64(n)
		points[i] = Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return points
}

// Bounds is an axis-aligned data-space bounding box.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}
