package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// writePlot renders the samples, the fitted curve and the principal period
// boundaries. The image format follows the file extension.
func writePlot(path string, x, y []float64, curve func(float64) float64, period []segment.Segment) error {
	p := plot.New()
	p.Title.Text = "Principal period"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	samples := make(plotter.XYs, len(y))
	ymin, ymax := y[0], y[0]
	for i := range y {
		samples[i].X, samples[i].Y = x[i], y[i]
		ymin, ymax = min(ymin, y[i]), max(ymax, y[i])
	}

	scatter, err := plotter.NewScatter(samples)
	if err != nil {
		return fmt.Errorf("periodinfo: plot samples: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(scatter)
	p.Legend.Add("samples", scatter)

	const resolution = 8
	fit := make(plotter.XYs, 0, resolution*len(x))
	for i := 0; i+1 < len(x); i++ {
		for k := range resolution {
			xi := x[i] + (x[i+1]-x[i])*float64(k)/resolution
			fit = append(fit, plotter.XY{X: xi, Y: curve(xi)})
		}
	}
	fit = append(fit, plotter.XY{X: x[len(x)-1], Y: curve(x[len(x)-1])})

	line, err := plotter.NewLine(fit)
	if err != nil {
		return fmt.Errorf("periodinfo: plot curve: %w", err)
	}
	line.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)
	p.Legend.Add("spline", line)

	for i, b := range segment.Interior(period) {
		marker, err := plotter.NewLine(plotter.XYs{{X: b, Y: ymin}, {X: b, Y: ymax}})
		if err != nil {
			return fmt.Errorf("periodinfo: plot boundary: %w", err)
		}
		marker.Color = color.RGBA{R: 200, A: 255}
		marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(marker)
		if i == 0 {
			p.Legend.Add("period boundary", marker)
		}
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("periodinfo: save plot: %w", err)
	}

	return nil
}
