package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"scatterplot/internal/scene"
	"scatterplot/pkg/geometry"

	"golang.org/x/image/vector"
)

// disc fills every pixel whose centre lies within r of the centre.
func (cv canvas) disc(centre geometry.PointInt, r int, c color.RGBA) {
	for y := centre.Y - r; y <= centre.Y+r; y++ {
		for x := centre.X - r; x <= centre.X+r; x++ {
			dx, dy := x-centre.X, y-centre.Y
			if dx*dx+dy*dy <= r*r {
				cv.set(x, y, c)
			}
		}
	}
}

// ring paints the pixels whose centre distance from the circle of radius r
// is at most width/2. It is symmetric in all eight octants for every radius.
func (cv canvas) ring(centre geometry.PointInt, r, width int, c color.RGBA) {
	half := float64(max(1, width)) / 2
	reach := r + (width+1)/2
	c0 := centre.ToFloat()
	for y := centre.Y - reach; y <= centre.Y+reach; y++ {
		for x := centre.X - reach; x <= centre.X+reach; x++ {
			d := geometry.Pt(x, y).ToFloat().Distance(c0)
			if math.Abs(d-float64(r)) <= half {
				cv.set(x, y, c)
			}
		}
	}
}

// fillRect paints r opaquely.
func (cv canvas) fillRect(r geometry.RectInt, c color.RGBA) {
	draw.Draw(cv.img, cv.clip.Intersect(r.ImageRect()), image.NewUniform(c), image.Point{}, draw.Src)
}

// fillPolygon fills the polygon with anti-aliased edges. Vertices are pixel
// centres; the polygon is clipped to the canvas before rasterising, so the
// mask is zero outside the clip rectangle.
func (cv canvas) fillPolygon(vertices []geometry.Point2D, c color.RGBA) {
	if len(vertices) < 3 || cv.clip.Empty() {
		return
	}

	pts := make([]geometry.Point2D, len(vertices))
	for i, v := range vertices {
		pts[i] = geometry.Point2D{X: v.X + 0.5, Y: v.Y + 0.5}
	}
	pts = clipPolygon(pts, cv.clip)
	if len(pts) < 3 {
		return
	}

	// the mask starts at the image origin
	full := image.Rect(0, 0, cv.clip.Max.X, cv.clip.Max.Y)
	z := vector.NewRasterizer(full.Dx(), full.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(cv.img, full, image.NewUniform(c), image.Point{})
}

// polygonOutline strokes the closed outline through the rounded vertices.
func (cv canvas) polygonOutline(vertices []geometry.Point2D, width int, c color.RGBA) {
	n := len(vertices)
	if n == 0 {
		return
	}
	pts := make([]geometry.PointInt, n+1)
	for i, v := range vertices {
		pts[i] = geometry.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
	}
	pts[n] = pts[0]
	cv.polyline(pts, width, c)
}

func (cv canvas) fillShape(s scene.Shape, c color.RGBA) {
	switch s.Kind {
	case scene.ShapeCircle:
		cv.disc(s.Center, s.Radius, c)
	case scene.ShapePolygon:
		cv.fillPolygon(s.Vertices, c)
	case scene.ShapeRect:
		cv.fillRect(s.Rect, c)
	}
}

func (cv canvas) outlineShape(s scene.Shape, width int, c color.RGBA) {
	switch s.Kind {
	case scene.ShapeCircle:
		cv.ring(s.Center, s.Radius, width, c)
	case scene.ShapePolygon:
		cv.polygonOutline(s.Vertices, width, c)
	case scene.ShapeRect:
		cv.rectOutline(s.Rect, width, c)
	}
}

// clipPolygon clips a polygon to the rectangle r (Sutherland–Hodgman).
func clipPolygon(pts []geometry.Point2D, r image.Rectangle) []geometry.Point2D {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)

	type edge struct {
		inside func(p geometry.Point2D) bool
		cross  func(a, b geometry.Point2D) geometry.Point2D
	}
	atX := func(x float64) func(a, b geometry.Point2D) geometry.Point2D {
		return func(a, b geometry.Point2D) geometry.Point2D {
			t := (x - a.X) / (b.X - a.X)
			return geometry.Point2D{X: x, Y: a.Y + t*(b.Y-a.Y)}
		}
	}
	atY := func(y float64) func(a, b geometry.Point2D) geometry.Point2D {
		return func(a, b geometry.Point2D) geometry.Point2D {
			t := (y - a.Y) / (b.Y - a.Y)
			return geometry.Point2D{X: a.X + t*(b.X-a.X), Y: y}
		}
	}
	edges := []edge{
		{func(p geometry.Point2D) bool { return p.X >= x0 }, atX(x0)},
		{func(p geometry.Point2D) bool { return p.X <= x1 }, atX(x1)},
		{func(p geometry.Point2D) bool { return p.Y >= y0 }, atY(y0)},
		{func(p geometry.Point2D) bool { return p.Y <= y1 }, atY(y1)},
	}

	out := pts
	for _, e := range edges {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}
