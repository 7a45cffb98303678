package layout

import (
	"math"

	"scatterplot/pkg/geometry"
)

// pixelLimit bounds mapped coordinates so rounding to int cannot overflow.
const pixelLimit = 1 << 30

// Mapper converts between data space and pixel space for a fitted layout.
// It does not clip; off-canvas results are left to the renderer.
type Mapper struct {
	toPixel geometry.AffineTransform
	toData  geometry.AffineTransform
}

// NewMapper builds the affine mapping px = originX + x·scaleX,
// py = originY + y·scaleY.
func NewMapper(l AxisLayout) Mapper {
	t := geometry.Translation(float64(l.X.Origin), float64(l.Y.Origin)).
		Compose(geometry.Scale(l.X.Scale, l.Y.Scale))
	inv, ok := t.Inverse()
	if !ok {
		inv = geometry.Identity()
	}
	return Mapper{toPixel: t, toData: inv}
}

// ToPixelF maps a data point to fractional pixel coordinates. The axes are
// mapped independently so an infinite x cannot poison y.
func (m Mapper) ToPixelF(x, y float64) geometry.Point2D {
	t := m.toPixel
	return geometry.Point2D{X: t.A*x + t.TX, Y: t.D*y + t.TY}
}

// ToPixel maps a data point to the nearest pixel, rounding half away from
// zero. Coordinates are clamped to ±2^30 first; NaN maps to the limit.
func (m Mapper) ToPixel(x, y float64) geometry.PointInt {
	p := m.ToPixelF(x, y)
	return geometry.PointInt{X: roundClamp(p.X), Y: roundClamp(p.Y)}
}

// ToData maps a pixel position back to data space.
func (m Mapper) ToData(px, py float64) geometry.Point2D {
	return m.toData.Apply(geometry.Point2D{X: px, Y: py})
}

func roundClamp(v float64) int {
	switch {
	case math.IsNaN(v):
		return pixelLimit
	case v > pixelLimit:
		return pixelLimit
	case v < -pixelLimit:
		return -pixelLimit
	}
	return int(math.Round(v))
}
