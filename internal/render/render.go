// Package render rasterises a composed scene onto an RGBA buffer.
package render

import (
	"fmt"
	"image"
	"log/slog"

	"scatterplot/internal/glyph"
	"scatterplot/internal/scene"
)

// Renderer paints scenes. It holds no per-scene state and may be shared.
type Renderer struct {
	glyphs *glyph.Library
}

// New creates a renderer that draws text with lib.
func New(lib *glyph.Library) *Renderer {
	return &Renderer{glyphs: lib}
}

// Render paints s with the shared embedded font.
func Render(s *scene.Scene) (*image.RGBA, error) {
	lib, err := glyph.Default()
	if err != nil {
		return nil, err
	}
	return New(lib).Render(s)
}

// Render allocates a canvas of the scene's size and paints every primitive
// back to front.
func (r *Renderer) Render(s *scene.Scene) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	prims := s.Primitives()
	if err := r.Paint(img, prims); err != nil {
		return nil, err
	}
	slog.Debug("rendered scene", "width", s.Width, "height", s.Height, "primitives", len(prims))
	return img, nil
}

// Paint draws prims onto img in order, so later primitives cover earlier
// ones. Geometry outside img is clipped.
func (r *Renderer) Paint(img *image.RGBA, prims []scene.Primitive) error {
	base := canvas{img: img, clip: img.Bounds()}

	for i, p := range prims {
		switch p := p.(type) {
		case scene.Line:
			base.within(p.Clip).line(p.From, p.To, p.Width, p.Colour)
		case scene.Polyline:
			base.within(p.Clip).polyline(p.Points, p.Width, p.Colour)
		case scene.FilledShape:
			base.fillShape(p.Shape, p.Fill)
			if p.OutlineWidth > 0 {
				base.outlineShape(p.Shape, p.OutlineWidth, p.Outline)
			}
		case scene.OutlinedShape:
			base.outlineShape(p.Shape, p.Width, p.Colour)
		case scene.GlyphRun:
			if r.glyphs == nil {
				return fmt.Errorf("primitive %d: no font for text %q", i, p.Text)
			}
			if err := r.glyphs.Draw(img, p.Text, p.Size, p.Dot, p.Colour); err != nil {
				return fmt.Errorf("primitive %d: %w", i, err)
			}
		default:
			return fmt.Errorf("primitive %d: unsupported type %T", i, p)
		}
	}
	return nil
}
