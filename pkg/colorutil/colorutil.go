// Package colorutil provides the closed chart colour palette and small
// colour helpers shared by the composer and renderer.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette colours.
var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Grey   = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	Orange = color.RGBA{R: 255, G: 146, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Pink   = color.RGBA{R: 255, G: 169, B: 208, A: 255}
)

// Colour names one entry of the palette. The zero value is ColourUnset,
// which is not a palette entry and renders black.
type Colour int

const (
	ColourUnset Colour = iota
	ColourWhite
	ColourBlack
	ColourGrey
	ColourOrange
	ColourRed
	ColourBlue
	ColourGreen
	ColourPink
)

var colourNames = [...]string{"White", "Black", "Grey", "Orange", "Red", "Blue", "Green", "Pink"}

var colourValues = [...]color.RGBA{White, Black, Grey, Orange, Red, Blue, Green, Pink}

func (c Colour) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Colour(%d)", int(c))
	}
	return colourNames[c-ColourWhite]
}

// Valid reports whether c is one of the palette entries.
func (c Colour) Valid() bool {
	return c >= ColourWhite && int(c-ColourWhite) < len(colourNames)
}

// RGBA returns the pixel value for c. Unset and unknown colours render
// black.
func (c Colour) RGBA() color.RGBA {
	if !c.Valid() {
		return Black
	}
	return colourValues[c-ColourWhite]
}

// ParseColour looks a colour up by name, ignoring case. "Gray" is accepted
// for Grey.
func ParseColour(name string) (Colour, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "gray") {
		return ColourGrey, nil
	}
	for i, cn := range colourNames {
		if strings.EqualFold(n, cn) {
			return ColourWhite + Colour(i), nil
		}
	}
	return ColourUnset, fmt.Errorf("unknown colour %q (valid: %s)", name, strings.Join(colourNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid colour %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colour) UnmarshalText(text []byte) error {
	v, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
