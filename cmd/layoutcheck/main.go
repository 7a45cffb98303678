// Command layoutcheck resolves the axis layout of a graph description and
// prints the ranges, pixel geometry and scale markers without rendering.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"scatterplot/internal/chart"
	"scatterplot/internal/layout"
	"scatterplot/internal/spec"
)

func main() {
	configPath := flag.String("config", "", "Path to graph description (.yaml, .json or .toml)")
	delimiter := flag.String("delimiter", ",", "Data file field delimiter")
	flag.Parse()

	if *configPath == "" || len([]rune(*delimiter)) != 1 {
		fmt.Println("Usage: layoutcheck -config <path> [-delimiter ,]")
		os.Exit(1)
	}

	g, err := spec.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load graph: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Graph %q: canvas %dx%d, resolution %d x %d\n",
		g.Title, g.Width(), g.Height(), g.XAxisResolution, g.YAxisResolution)

	opts := chart.Options{Delimiter: []rune(*delimiter)[0]}
	sets, err := chart.LoadData(context.Background(), g, *configPath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load data: %v\n", err)
		os.Exit(1)
	}
	for i, s := range sets {
		fmt.Printf("  data set %d %q: %d samples\n", i+1, g.DataSets[i].Name, s.Len())
	}

	s, err := chart.Compose(g, sets, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Layout failed: %v\n", err)
		os.Exit(1)
	}

	l, f := s.Layout, s.Frame
	fmt.Printf("\nQuadrant: %s\n", l.Quadrant)
	fmt.Printf("Plot area: %dx%d at (%d,%d)\n", l.Area.Width, l.Area.Height, l.Area.X, l.Area.Y)
	fmt.Printf("Origin pixel: (%d,%d)\n", l.X.Origin, l.Y.Origin)
	fmt.Printf("Fonts: title %.1f, axis %.1f, tick %.1f, legend %.1f\n",
		f.Fonts.Title, f.Fonts.Axis, f.Fonts.Tick, f.Fonts.Legend)
	if f.HasLegend() {
		fmt.Printf("Legend: %dx%d at (%d,%d), corner %s\n",
			f.Legend.Width, f.Legend.Height, f.Legend.X, f.Legend.Y, f.LegendCorner)
	}

	printAxis("X", l.X)
	printAxis("Y", l.Y)

	fmt.Printf("\nPrimitives: %d\n", s.Len())
}

func printAxis(name string, a layout.Axis) {
	fmt.Printf("\n%s axis: side %s, extent %g, step %g, steps -%d/+%d, %d px/step, pixels %d..%d\n",
		name, a.Side, a.Extent, a.Step, a.NegSteps, a.PosSteps, a.PixelsPerStep, a.MinPixel(), a.MaxPixel())

	fmt.Printf("  %-6s %10s %8s\n", "Index", "Value", "Pixel")
	fmt.Println("  " + strings.Repeat("-", 26))
	for _, t := range layout.Ticks(a) {
		fmt.Printf("  %-6d %10s %8d\n", t.Index, t.Label, a.Marker(t.Index))
	}
}
