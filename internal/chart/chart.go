// Package chart runs the full pipeline from a graph specification and its
// samples to a painted image.
package chart

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"scatterplot/internal/curve"
	"scatterplot/internal/data"
	"scatterplot/internal/glyph"
	"scatterplot/internal/render"
	"scatterplot/internal/scene"
	"scatterplot/internal/spec"

	"golang.org/x/sync/errgroup"
)

// Options configures a pipeline run.
type Options struct {
	// Parallel builds each data set's primitives concurrently.
	Parallel bool

	// Delimiter separates fields in delimited data files. Zero means ','.
	Delimiter rune
}

// LoadData reads the samples of every data set in g. Relative data paths
// are resolved against the directory of configPath. Files are read
// concurrently; the result is indexed like g.DataSets.
func LoadData(ctx context.Context, g *spec.GraphSpec, configPath string, opts Options) ([]data.SampleSet, error) {
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	sets := make([]data.SampleSet, len(g.DataSets))
	eg, ctx := errgroup.WithContext(ctx)
	for i, ds := range g.DataSets {
		i, ds := i, ds
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := ds.ResolveDataPath(configPath)
			if path == "" {
				return spec.NewValidationError(ds.Name, "data_path", fmt.Errorf("%w: no data file", spec.ErrInvalidField))
			}
			set, err := data.Load(path, ds, delimiter)
			if err != nil {
				return fmt.Errorf("data set %q: %w", ds.Name, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// Curves builds the best-fit curve of every data set; data sets without a
// best fit get nil. Curves marked for fitting are solved against the data
// set's samples.
func Curves(g *spec.GraphSpec, sets []data.SampleSet) ([]curve.Curve, error) {
	curves := make([]curve.Curve, len(g.DataSets))
	for i, ds := range g.DataSets {
		if ds.BestFit == nil {
			continue
		}
		c, err := ds.BestFit.Curve()
		if err != nil {
			return nil, spec.NewValidationError(ds.Name, "best_fit", fmt.Errorf("%w: %w", spec.ErrInvalidField, err))
		}
		if ds.BestFit.Fit {
			c, err = curve.Fit(c, sets[i].XS(), sets[i].YS(), ds.BestFit.Degree)
			if err != nil {
				return nil, spec.NewValidationError(ds.Name, "best_fit.fit", fmt.Errorf("%w: %w", spec.ErrInvalidField, err))
			}
			slog.Info("fitted best fit", "data_set", ds.Name, "curve", c.Name(), "coefficients", fmt.Sprintf("%+v", c))
		}
		curves[i] = c
	}
	return curves, nil
}

// Compose validates the inputs, builds the best-fit curves and lays out the
// scene.
func Compose(g *spec.GraphSpec, sets []data.SampleSet, opts Options) (*scene.Scene, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(sets) != len(g.DataSets) {
		return nil, fmt.Errorf("got %d sample sets for %d data sets", len(sets), len(g.DataSets))
	}
	named := make([]data.SampleSet, len(sets))
	for i, set := range sets {
		set.Name = g.DataSets[i].Name
		if err := set.Validate(); err != nil {
			return nil, err
		}
		named[i] = set
	}
	sets = named

	curves, err := Curves(g, sets)
	if err != nil {
		return nil, err
	}

	lib, err := glyph.Default()
	if err != nil {
		return nil, err
	}
	return scene.Compose(g, sets, curves, scene.Options{Measurer: lib, Parallel: opts.Parallel})
}

// Render runs the whole pipeline and returns the painted canvas. The same
// inputs always produce the same pixels.
func Render(g *spec.GraphSpec, sets []data.SampleSet, opts Options) (*image.RGBA, error) {
	start := time.Now()

	s, err := Compose(g, sets, opts)
	if err != nil {
		return nil, err
	}
	img, err := render.Render(s)
	if err != nil {
		return nil, err
	}

	slog.Info("rendered chart",
		"title", g.Title,
		"size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"quadrant", s.Layout.Quadrant,
		"data_sets", len(sets),
		"elapsed", time.Since(start))
	return img, nil
}
