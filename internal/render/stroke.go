package render

import (
	"image"
	"image/color"
	"math"

	"scatterplot/pkg/geometry"
)

// canvas is the destination image restricted to a clip rectangle.
type canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

// within narrows the canvas to r; an empty r leaves it unchanged.
func (cv canvas) within(r geometry.RectInt) canvas {
	if r.Empty() {
		return cv
	}
	return canvas{img: cv.img, clip: cv.clip.Intersect(r.ImageRect())}
}

func (cv canvas) set(x, y int, c color.RGBA) {
	if x >= cv.clip.Min.X && x < cv.clip.Max.X && y >= cv.clip.Min.Y && y < cv.clip.Max.Y {
		cv.img.SetRGBA(x, y, c)
	}
}

// brush returns the offsets a square brush of the given width covers
// around its centre pixel.
func brush(width int) (lo, hi int) {
	width = max(1, width)
	lo = -(width - 1) / 2
	return lo, lo + width - 1
}

// stamp paints the square brush centred on (x, y).
func (cv canvas) stamp(x, y, lo, hi int, c color.RGBA) {
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			cv.set(x+dx, y+dy, c)
		}
	}
}

// line strokes from a to b with a square brush. The segment is clipped
// first so far off-canvas endpoints cost nothing.
func (cv canvas) line(a, b geometry.PointInt, width int, c color.RGBA) {
	if cv.clip.Empty() {
		return
	}
	lo, hi := brush(width)

	// any pixel the brush can reach lies inside this window
	xmin := float64(cv.clip.Min.X - hi)
	xmax := float64(cv.clip.Max.X - 1 - lo)
	ymin := float64(cv.clip.Min.Y - hi)
	ymax := float64(cv.clip.Max.Y - 1 - lo)

	x0, y0, x1, y1, ok := clipSegment(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y), xmin, ymin, xmax, ymax)
	if !ok {
		return
	}
	cv.bresenham(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), lo, hi, c)
}

// bresenham walks the integer line from (x1, y1) to (x2, y2) inclusive,
// stamping the brush at each step.
func (cv canvas) bresenham(x1, y1, x2, y2, lo, hi int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		cv.stamp(x1, y1, lo, hi, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// polyline strokes consecutive points. A single point is stamped once.
func (cv canvas) polyline(pts []geometry.PointInt, width int, c color.RGBA) {
	switch len(pts) {
	case 0:
		return
	case 1:
		cv.line(pts[0], pts[0], width, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		cv.line(pts[i-1], pts[i], width, c)
	}
}

// rectOutline draws width nested one pixel outlines from the edge of r
// inwards.
func (cv canvas) rectOutline(r geometry.RectInt, width int, c color.RGBA) {
	for k := 0; k < width; k++ {
		in := r.Inset(k)
		if in.Empty() {
			return
		}
		x1, y1 := in.X, in.Y
		x2, y2 := in.Right()-1, in.Bottom()-1
		cv.line(geometry.Pt(x1, y1), geometry.Pt(x2, y1), 1, c)
		cv.line(geometry.Pt(x2, y1), geometry.Pt(x2, y2), 1, c)
		cv.line(geometry.Pt(x2, y2), geometry.Pt(x1, y2), 1, c)
		cv.line(geometry.Pt(x1, y2), geometry.Pt(x1, y1), 1, c)
	}
}

// clipSegment clips a segment to [xmin, xmax] × [ymin, ymax] with the
// Liang–Barsky algorithm. ok is false when nothing remains.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
