// Command periodinfo finds the principal period of a sampled signal.
//
// Usage:
//
//	periodinfo [flags]
//
// Samples are read as CSV with one column (y) or two columns (x, y); a
// non-numeric first row is skipped as a header. Files ending in .gz, .zst
// or .sz are decompressed on the fly.
//
// Examples:
//
//	periodinfo -in samples.csv
//	periodinfo -in samples.csv.zst -tol 0.1,0.3,0.6
//	periodinfo -demo 4 -json
//	periodinfo -demo 6 -noise 0.05 -plot period.png
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/dsp/periodicity"
	"github.com/cwbudde/algo-periodicity/dsp/signal"
)

type config struct {
	in       string
	tol      string
	leaf     int
	points   int
	asJSON   bool
	plotPath string
	demo     float64
	samples  int
	noise    float64
	seed     int64
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "-", "input CSV file, - for stdin")
	flag.StringVar(&cfg.tol, "tol", "0.3", "comma-separated clustering tolerances")
	flag.IntVar(&cfg.leaf, "leaf", 1, "radius index leaf size")
	flag.IntVar(&cfg.points, "points", 10, "curve distance quadrature points")
	flag.BoolVar(&cfg.asJSON, "json", false, "print a JSON report instead of tables")
	flag.StringVar(&cfg.plotPath, "plot", "", "write a plot of the first tolerance to this file (.png, .svg, .pdf)")
	flag.Float64Var(&cfg.demo, "demo", 0, "analyse a synthetic sine with this many periods instead of -in")
	flag.IntVar(&cfg.samples, "samples", 0, "demo sample count (default 50 per period)")
	flag.Float64Var(&cfg.noise, "noise", 0, "demo noise amplitude")
	flag.Int64Var(&cfg.seed, "seed", 1, "demo noise seed")
	verbose := flag.Bool("v", false, "log debug diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: periodinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Finds the principal period of a sampled signal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  periodinfo -in samples.csv\n")
		fmt.Fprintf(os.Stderr, "  periodinfo -in samples.csv.zst -tol 0.1,0.3,0.6\n")
		fmt.Fprintf(os.Stderr, "  periodinfo -demo 4 -json\n")
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, w io.Writer, logger *slog.Logger) error {
	tols, err := parseTolerances(cfg.tol)
	if err != nil {
		return err
	}

	x, y, err := loadSamples(cfg)
	if err != nil {
		return err
	}

	opts := []core.AnalysisOption{
		core.WithLeafSize(cfg.leaf),
		core.WithQuadraturePoints(cfg.points),
		core.WithLogger(logger),
	}

	ix, err := periodicity.NewIndexer(y, x, opts...)
	if err != nil {
		return err
	}

	rep, err := analyze(ix, y, tols, logger, opts...)
	if err != nil {
		return err
	}

	if cfg.plotPath != "" {
		if x == nil {
			x = make([]float64, len(y))
			for i := range x {
				x[i] = float64(i)
			}
		}
		if err := writePlot(cfg.plotPath, x, y, ix.Curve().At, rep.Tolerances[0].periodSegs); err != nil {
			return err
		}
		logger.Info("plot written", slog.String("path", cfg.plotPath))
	}

	if cfg.asJSON {
		return writeJSON(w, rep)
	}
	return writeTable(w, rep)
}

func loadSamples(cfg config) (x, y []float64, err error) {
	if cfg.demo > 0 {
		y, err := demoSignal(cfg)
		return nil, y, err
	}

	if strings.TrimSpace(cfg.in) == "" {
		return nil, nil, fmt.Errorf("periodinfo: no input given")
	}

	r, err := openInput(cfg.in)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	return readSamples(r)
}

func demoSignal(cfg config) ([]float64, error) {
	n := cfg.samples
	if n <= 0 {
		n = int(50*cfg.demo + 0.5)
	}

	g := signal.NewGenerator(signal.WithSeed(cfg.seed))
	y, err := g.Sine(cfg.demo, 1, n)
	if err != nil {
		return nil, fmt.Errorf("periodinfo: demo signal: %w", err)
	}
	if cfg.noise <= 0 {
		return y, nil
	}

	noise, err := g.WhiteNoise(cfg.noise, n)
	if err != nil {
		return nil, fmt.Errorf("periodinfo: demo noise: %w", err)
	}
	return signal.Add(y, noise)
}
