// Package spec provides the declarative scatter graph configuration and its
// loading from JSON, YAML or TOML files.
package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scatterplot/pkg/colorutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultSymbolRadius is used when a data set leaves symbol_radius unset.
const DefaultSymbolRadius = 3

// GraphSpec describes one scatter chart.
type GraphSpec struct {
	Title           string        `json:"title" yaml:"title" toml:"title"`
	CanvasPixelSize [2]int        `json:"canvas_pixel_size" yaml:"canvas_pixel_size" toml:"canvas_pixel_size"`
	XAxisLabel      string        `json:"x_axis_label" yaml:"x_axis_label" toml:"x_axis_label"`
	XAxisResolution int           `json:"x_axis_resolution" yaml:"x_axis_resolution" toml:"x_axis_resolution"`
	YAxisLabel      string        `json:"y_axis_label" yaml:"y_axis_label" toml:"y_axis_label"`
	YAxisResolution int           `json:"y_axis_resolution" yaml:"y_axis_resolution" toml:"y_axis_resolution"`
	HasGrid         bool          `json:"has_grid" yaml:"has_grid" toml:"has_grid"`
	HasLegend       bool          `json:"has_legend" yaml:"has_legend" toml:"has_legend"`
	DataSets        []DataSetSpec `json:"data_sets" yaml:"data_sets" toml:"data_sets"`
}

// DataSetSpec describes where one data set comes from and how it is drawn.
// SymbolFill paints the interior of circle, triangle and square symbols;
// left unset they are drawn hollow.
type DataSetSpec struct {
	// Data file path (relative to the graph file unless absolute)
	DataPath   string `json:"data_path" yaml:"data_path" toml:"data_path"`
	HasHeaders bool   `json:"has_headers" yaml:"has_headers" toml:"has_headers"`
	// Sheet name for .xlsx sources; empty selects the first sheet
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" toml:"sheet,omitempty"`

	// Zero-based source columns
	XColumn      int  `json:"x_axis_csv_column" yaml:"x_axis_csv_column" toml:"x_axis_csv_column"`
	XErrorColumn *int `json:"x_axis_error_bar_csv_column,omitempty" yaml:"x_axis_error_bar_csv_column,omitempty" toml:"x_axis_error_bar_csv_column,omitempty"`
	YColumn      int  `json:"y_axis_csv_column" yaml:"y_axis_csv_column" toml:"y_axis_csv_column"`
	YErrorColumn *int `json:"y_axis_error_bar_csv_column,omitempty" yaml:"y_axis_error_bar_csv_column,omitempty" toml:"y_axis_error_bar_csv_column,omitempty"`

	Name            string           `json:"name" yaml:"name" toml:"name"`
	Colour          colorutil.Colour `json:"colour" yaml:"colour" toml:"colour"`
	Symbol          Symbol           `json:"symbol" yaml:"symbol" toml:"symbol"`
	SymbolRadius    int              `json:"symbol_radius" yaml:"symbol_radius" toml:"symbol_radius"`
	SymbolThickness int              `json:"symbol_thickness" yaml:"symbol_thickness" toml:"symbol_thickness"`
	SymbolFill      colorutil.Colour `json:"symbol_fill,omitempty" yaml:"symbol_fill,omitempty" toml:"symbol_fill,omitempty"`
	BestFit         *BestFitSpec     `json:"best_fit,omitempty" yaml:"best_fit,omitempty" toml:"best_fit,omitempty"`
}

// Width returns the canvas width in pixels.
func (g *GraphSpec) Width() int { return g.CanvasPixelSize[0] }

// Height returns the canvas height in pixels.
func (g *GraphSpec) Height() int { return g.CanvasPixelSize[1] }

// Load reads a graph file. The format is chosen by extension: .json, .yaml,
// .yml or .toml. Defaults are applied and the result is validated.
func Load(path string) (*GraphSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	g, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return g, nil
}

// Decode parses graph data in the format named by ext (with or without the
// leading dot), applies defaults and validates the result.
func Decode(data []byte, ext string) (*GraphSpec, error) {
	var g GraphSpec
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&g); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&g); err != nil {
			return nil, err
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&g); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .json, .yaml or .toml)", ext)
	}

	g.applyDefaults()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *GraphSpec) applyDefaults() {
	for i := range g.DataSets {
		ds := &g.DataSets[i]
		if ds.SymbolRadius == 0 {
			ds.SymbolRadius = DefaultSymbolRadius
		}
		if ds.Name == "" {
			ds.Name = fmt.Sprintf("Data set %d", i+1)
		}
		if ds.Colour == colorutil.ColourUnset {
			ds.Colour = colorutil.ColourBlack
		}
		if ds.BestFit != nil && ds.BestFit.Colour == colorutil.ColourUnset {
			ds.BestFit.Colour = colorutil.ColourBlack
		}
	}
}

// Validate checks the layout preconditions and every data set's fields.
// Failures are *ValidationError values wrapping ErrInvalidLayout or
// ErrInvalidField.
func (g *GraphSpec) Validate() error {
	if g.Width() <= 0 || g.Height() <= 0 {
		return invalid("", "canvas_pixel_size", ErrInvalidLayout, "canvas %dx%d has no area", g.Width(), g.Height())
	}
	if g.XAxisResolution <= 0 {
		return invalid("", "x_axis_resolution", ErrInvalidLayout, "resolution %d must be positive", g.XAxisResolution)
	}
	if g.YAxisResolution <= 0 {
		return invalid("", "y_axis_resolution", ErrInvalidLayout, "resolution %d must be positive", g.YAxisResolution)
	}
	if len(g.DataSets) == 0 {
		return invalid("", "data_sets", ErrInvalidLayout, "no data sets to plot")
	}
	for i := range g.DataSets {
		if err := g.DataSets[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the fields of a single data set.
func (ds *DataSetSpec) Validate() error {
	name := ds.Name
	if ds.XColumn < 0 {
		return invalid(name, "x_axis_csv_column", ErrInvalidField, "column %d is negative", ds.XColumn)
	}
	if ds.YColumn < 0 {
		return invalid(name, "y_axis_csv_column", ErrInvalidField, "column %d is negative", ds.YColumn)
	}
	if ds.XErrorColumn != nil && *ds.XErrorColumn < 0 {
		return invalid(name, "x_axis_error_bar_csv_column", ErrInvalidField, "column %d is negative", *ds.XErrorColumn)
	}
	if ds.YErrorColumn != nil && *ds.YErrorColumn < 0 {
		return invalid(name, "y_axis_error_bar_csv_column", ErrInvalidField, "column %d is negative", *ds.YErrorColumn)
	}
	if ds.Colour != colorutil.ColourUnset && !ds.Colour.Valid() {
		return invalid(name, "colour", ErrInvalidField, "unknown colour %d", int(ds.Colour))
	}
	if ds.SymbolFill != colorutil.ColourUnset && !ds.SymbolFill.Valid() {
		return invalid(name, "symbol_fill", ErrInvalidField, "unknown colour %d", int(ds.SymbolFill))
	}
	if !ds.Symbol.Valid() {
		return invalid(name, "symbol", ErrInvalidField, "unknown symbol %d", int(ds.Symbol))
	}
	if ds.SymbolRadius < 1 {
		return invalid(name, "symbol_radius", ErrInvalidField, "radius %d must be at least 1", ds.SymbolRadius)
	}
	if ds.SymbolThickness < 0 {
		return invalid(name, "symbol_thickness", ErrInvalidField, "thickness %d is negative", ds.SymbolThickness)
	}
	if ds.BestFit != nil {
		if err := ds.BestFit.validate(name); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDataPath returns the absolute path to the data set's source file.
// Relative paths are taken relative to the directory of the graph file.
func (ds *DataSetSpec) ResolveDataPath(configPath string) string {
	if ds.DataPath == "" || filepath.IsAbs(ds.DataPath) {
		return ds.DataPath
	}
	return filepath.Join(filepath.Dir(configPath), ds.DataPath)
}
