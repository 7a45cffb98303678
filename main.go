// Package main provides the CLI entry point for scatterplot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"scatterplot/internal/chart"
	"scatterplot/internal/output"
	"scatterplot/internal/spec"
	"scatterplot/internal/version"

	"github.com/spf13/cobra"
)

var (
	graphType    string
	configPath   string
	outputDir    string
	csvDelimiter string
	format       string
	parallel     bool
	verbose      int
	quiet        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scatterplot",
		Short: "Plot data sets from delimited files onto a chart image",
		Long: `scatterplot reads a graph description (YAML, JSON or TOML) and the
data files it references, and renders a scatter chart with optional error
bars, best-fit curves, grid and legend to a PNG or TIFF image named after the
chart title.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&graphType, "graph", "g", "", `Graph type to generate, accepted values: "scatter"`)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the graph description file (.yaml, .yml, .json or .toml)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory the image is written to; the file name is derived from the title")
	rootCmd.Flags().StringVar(&csvDelimiter, "csv-delimiter", ",", "Field delimiter for data files, a single character")
	rootCmd.Flags().StringVar(&format, "format", "png", "Image format: png or tiff")
	rootCmd.Flags().BoolVar(&parallel, "parallel", false, "Build data set primitives concurrently")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "More log output (repeatable)")
	rootCmd.PersistentFlags().CountVarP(&quiet, "quiet", "q", "Less log output (repeatable)")
	_ = rootCmd.MarkFlagRequired("graph")
	_ = rootCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("scatterplot", version.String())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		slog.Error("scatterplot failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo + slog.Level(4*(quiet-verbose))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func run(cmd *cobra.Command, args []string) error {
	if !strings.EqualFold(graphType, "scatter") {
		return fmt.Errorf("invalid graph type %q, valid graphs are 'scatter'", graphType)
	}
	if utf8.RuneCountInString(csvDelimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", csvDelimiter)
	}
	delimiter, _ := utf8.DecodeRuneInString(csvDelimiter)

	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := spec.Load(configPath)
	if err != nil {
		return err
	}
	slog.Info("loaded graph", "title", g.Title, "config", configPath, "data_sets", len(g.DataSets))

	opts := chart.Options{Parallel: parallel, Delimiter: delimiter}
	sets, err := chart.LoadData(ctx, g, configPath, opts)
	if err != nil {
		return err
	}

	img, err := chart.Render(g, sets, opts)
	if err != nil {
		return err
	}

	path, err := output.Save(outputDir, g.Title, f, img)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
