// Package output names and encodes rendered charts.
package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/tiff"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name, case-insensitively; "tif" means TIFF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "tiff", "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want png or tiff)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

var unsafeRunes = regexp.MustCompile(`\s|\W`)

// FileName derives the output file name from a chart title: whitespace and
// non-word characters become underscores and the result is lower-cased.
func FileName(title string, f Format) string {
	name := strings.ToLower(unsafeRunes.ReplaceAllString(title, "_"))
	if name == "" {
		name = "chart"
	}
	return name + f.Ext()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported output format %q", string(f))
}

// Save encodes img into dir under the name derived from title and returns
// the written path.
func Save(dir, title string, f Format, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(title, f))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	// a failed write leaves no partial image behind
	discard := func() {
		file.Close()
		os.Remove(path)
	}
	w := bufio.NewWriter(file)
	if err := Encode(w, img, f); err != nil {
		discard()
		return "", fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		discard()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info("saved chart", "path", path, "format", string(f))
	return path, nil
}
