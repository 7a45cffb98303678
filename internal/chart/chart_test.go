package chart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scatterplot/internal/curve"
	"scatterplot/internal/data"
	"scatterplot/internal/layout"
	"scatterplot/internal/render"
	"scatterplot/internal/spec"
	"scatterplot/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() (*spec.GraphSpec, []data.SampleSet) {
	g := &spec.GraphSpec{
		Title:           "Scenario",
		CanvasPixelSize: [2]int{840, 600},
		XAxisLabel:      "x",
		YAxisLabel:      "y",
		XAxisResolution: 11,
		YAxisResolution: 11,
		DataSets: []spec.DataSetSpec{{
			Name:         "points",
			Colour:       colorutil.ColourRed,
			Symbol:       spec.SymbolCross,
			SymbolRadius: 3,
		}},
	}
	sets := []data.SampleSet{{Samples: []data.Sample{{X: 0.5, Y: 0.5}, {X: 1, Y: 1}, {X: 1.5, Y: 1.5}}}}
	return g, sets
}

func TestRenderScenario(t *testing.T) {
	g, sets := scenario()

	s, err := Compose(g, sets, Options{})
	require.NoError(t, err)
	assert.Equal(t, layout.TopRight, s.Layout.Quadrant)

	img, err := render.Render(s)
	require.NoError(t, err)
	assert.Equal(t, 840, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	assert.Equal(t, colorutil.White, img.RGBAAt(0, 0))
	origin := s.Layout.OriginPixel()
	assert.Equal(t, colorutil.Black, img.RGBAAt(origin.X, origin.Y))

	m := layout.NewMapper(s.Layout)
	for _, p := range sets[0].Samples {
		c := m.ToPixel(p.X, p.Y)
		assert.Equal(t, colorutil.Red, img.RGBAAt(c.X, c.Y))
		assert.Equal(t, colorutil.Red, img.RGBAAt(c.X+3, c.Y))
		assert.Equal(t, colorutil.White, img.RGBAAt(c.X+2, c.Y+2))
	}
}

func TestFilledSymbolsRender(t *testing.T) {
	g, sets := scenario()
	g.DataSets[0].Symbol = spec.SymbolSquare
	g.DataSets[0].SymbolRadius = 4
	g.DataSets[0].SymbolFill = colorutil.ColourPink

	s, err := Compose(g, sets, Options{})
	require.NoError(t, err)
	img, err := render.Render(s)
	require.NoError(t, err)

	m := layout.NewMapper(s.Layout)
	for _, p := range sets[0].Samples {
		c := m.ToPixel(p.X, p.Y)
		assert.Equal(t, colorutil.Pink, img.RGBAAt(c.X, c.Y))
		assert.Equal(t, colorutil.Pink, img.RGBAAt(c.X+2, c.Y-2))
		assert.Equal(t, colorutil.Red, img.RGBAAt(c.X+4, c.Y))
		assert.Equal(t, colorutil.Red, img.RGBAAt(c.X, c.Y-4))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	g, sets := scenario()
	g.HasGrid = true
	g.HasLegend = true
	g.DataSets = append(g.DataSets, spec.DataSetSpec{
		Name:         "wave",
		Colour:       colorutil.ColourBlue,
		Symbol:       spec.SymbolCircle,
		SymbolRadius: 4,
		BestFit:      &spec.BestFitSpec{Type: spec.CurveSine, Amplitude: 1, Period: 2, Colour: colorutil.ColourGreen},
	})
	sets = append(sets, data.SampleSet{Samples: []data.Sample{{X: -1, Y: -0.5}, {X: 2, Y: 1}}})

	a, err := Render(g, sets, Options{})
	require.NoError(t, err)
	b, err := Render(g, sets, Options{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestFourQuadrants(t *testing.T) {
	g, _ := scenario()
	sets := []data.SampleSet{{Samples: []data.Sample{{X: -2, Y: -9}, {X: 8, Y: 1}}}}

	s, err := Compose(g, sets, Options{})
	require.NoError(t, err)
	assert.Equal(t, layout.All, s.Layout.Quadrant)

	// origin sits on the zero crossing, not the canvas centre
	assert.Equal(t, s.Layout.Area.X+s.Layout.X.NegSteps*s.Layout.X.PixelsPerStep, s.Layout.X.Origin)
	assert.NotEqual(t, 420, s.Layout.X.Origin)
}

func TestPreconditions(t *testing.T) {
	t.Run("zero resolution", func(t *testing.T) {
		g, sets := scenario()
		g.XAxisResolution = 0
		_, err := Render(g, sets, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, spec.ErrInvalidLayout))

		var verr *spec.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "x_axis_resolution", verr.Field)
	})

	t.Run("empty sample set", func(t *testing.T) {
		g, _ := scenario()
		_, err := Render(g, []data.SampleSet{{}}, Options{})
		assert.True(t, errors.Is(err, spec.ErrInvalidLayout))
	})

	t.Run("set count mismatch", func(t *testing.T) {
		g, sets := scenario()
		_, err := Render(g, append(sets, sets[0]), Options{})
		assert.Error(t, err)
	})

	t.Run("caller sets untouched", func(t *testing.T) {
		g, sets := scenario()
		_, err := Compose(g, sets, Options{})
		require.NoError(t, err)
		assert.Empty(t, sets[0].Name)
	})
}

func TestCurves(t *testing.T) {
	g, sets := scenario()
	g.DataSets = append(g.DataSets,
		spec.DataSetSpec{Name: "fit", BestFit: &spec.BestFitSpec{Type: spec.CurveLinear, Fit: true, Colour: colorutil.ColourOrange}},
		spec.DataSetSpec{Name: "given", BestFit: &spec.BestFitSpec{Type: spec.CurveGaussian, Variance: 1}},
	)
	sets = append(sets,
		data.SampleSet{Samples: []data.Sample{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}},
		data.SampleSet{Samples: []data.Sample{{X: 0, Y: 0}}},
	)

	curves, err := Curves(g, sets)
	require.NoError(t, err)
	require.Len(t, curves, 3)
	assert.Nil(t, curves[0])

	lin, ok := curves[1].(curve.Linear)
	require.True(t, ok)
	assert.InDelta(t, 2, lin.Gradient, 1e-9)
	assert.InDelta(t, 1, lin.YIntercept, 1e-9)
	assert.Equal(t, colorutil.ColourOrange, lin.Colour)

	_, ok = curves[2].(curve.Gaussian)
	assert.True(t, ok)
}

func TestCurvesFitNeedsEnoughPoints(t *testing.T) {
	g, _ := scenario()
	g.DataSets[0].BestFit = &spec.BestFitSpec{Type: spec.CurveCubic, Fit: true}
	sets := []data.SampleSet{{Samples: []data.Sample{{X: 0, Y: 1}, {X: 1, Y: 3}}}}

	_, err := Curves(g, sets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, spec.ErrInvalidField))
}

func TestLoadData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x,y\n1,2\n3,4\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("5\t6\n"), 0o644))

	g := &spec.GraphSpec{DataSets: []spec.DataSetSpec{
		{Name: "a", DataPath: "a.csv", HasHeaders: true, XColumn: 0, YColumn: 1},
		{Name: "b", DataPath: filepath.Join(dir, "b.tsv"), XColumn: 0, YColumn: 1},
	}}
	config := filepath.Join(dir, "graph.yaml")

	_, err := LoadData(context.Background(), g, config, Options{})
	require.Error(t, err, "tab separated file read with commas")

	g.DataSets = g.DataSets[:1]
	sets, err := LoadData(context.Background(), g, config, Options{})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []float64{1, 3}, sets[0].XS())
	assert.Equal(t, []float64{2, 4}, sets[0].YS())
}

func TestLoadDataCustomDelimiter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("5\t6\n7\t8\n"), 0o644))
	g := &spec.GraphSpec{DataSets: []spec.DataSetSpec{{Name: "b", DataPath: "b.tsv", XColumn: 0, YColumn: 1}}}

	sets, err := LoadData(context.Background(), g, filepath.Join(dir, "graph.json"), Options{Delimiter: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7}, sets[0].XS())
}

func TestLoadDataMissingFile(t *testing.T) {
	g := &spec.GraphSpec{DataSets: []spec.DataSetSpec{{Name: "gone", DataPath: "missing.csv"}}}
	_, err := LoadData(context.Background(), g, filepath.Join(t.TempDir(), "graph.toml"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	g.DataSets[0].DataPath = ""
	_, err = LoadData(context.Background(), g, "graph.toml", Options{})
	assert.True(t, errors.Is(err, spec.ErrInvalidField))
}

func TestPendulumExample(t *testing.T) {
	config := filepath.Join("..", "..", "examples", "pendulum", "graph.yaml")
	g, err := spec.Load(config)
	require.NoError(t, err)

	sets, err := LoadData(context.Background(), g, config, Options{})
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 10, sets[0].Len())
	require.NotNil(t, sets[0].Samples[0].YErr)

	curves, err := Curves(g, sets)
	require.NoError(t, err)
	_, ok := curves[0].(curve.Quadratic)
	assert.True(t, ok)
	_, ok = curves[1].(curve.Polynomial)
	assert.True(t, ok)

	img, err := Render(g, sets, Options{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, 840, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}
