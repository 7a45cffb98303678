// Package glyph measures and draws text in the embedded Go Regular font.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"scatterplot/internal/layout"
	"scatterplot/pkg/geometry"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Library holds the parsed font and one face per pixel size. Faces keep
// internal buffers, so every use goes through the mutex.
type Library struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses the embedded Go Regular font.
func New() (*Library, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return &Library{font: f, faces: make(map[float64]font.Face)}, nil
}

var defaultLibrary = sync.OnceValues(New)

// Default returns the shared library, parsing the font on first use.
func Default() (*Library, error) {
	return defaultLibrary()
}

// face returns the cached face for size. Callers hold l.mu.
func (l *Library) face(size float64) (font.Face, error) {
	if f, ok := l.faces[size]; ok {
		return f, nil
	}
	// DPI 72 makes Size a pixel height
	f, err := opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at size %.2f: %w", size, err)
	}
	l.faces[size] = f
	return f, nil
}

// Measure returns the advance width and the ascent/descent of the face at
// size. It implements layout.Measurer.
func (l *Library) Measure(text string, size float64) layout.TextExtent {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.face(size)
	if err != nil {
		slog.Warn("cannot measure text", "text", text, "error", err)
		return layout.TextExtent{}
	}
	m := f.Metrics()
	return layout.TextExtent{
		Width:   font.MeasureString(f, text).Ceil(),
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
	}
}

// Draw paints text onto dst with its baseline starting at dot. Glyph edges
// are anti-aliased and composited over what is already there.
func (l *Library) Draw(dst draw.Image, text string, size float64, dot geometry.PointInt, c color.Color) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.face(size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f,
		Dot:  fixed.Point26_6{X: fixed.I(dot.X), Y: fixed.I(dot.Y)},
	}
	d.DrawString(text)
	return nil
}
