// Package render provides rendering sinks for the waveform engine.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RyanBlaney/sonido-scope/logging"
	"github.com/RyanBlaney/sonido-scope/waveform"
)

// seriesColors maps the engine's single-letter color names to RGBA values.
var seriesColors = map[string]color.RGBA{
	"r": {R: 214, G: 39, B: 40, A: 255},
	"g": {R: 44, G: 160, B: 44, A: 255},
	"b": {R: 31, G: 119, B: 180, A: 255},
	"k": {A: 255},
	"y": {R: 188, G: 189, B: 34, A: 255},
	"m": {R: 148, G: 103, B: 189, A: 255},
	"c": {R: 23, G: 190, B: 207, A: 255},
}

func colorFor(name string) color.RGBA {
	if c, ok := seriesColors[name]; ok {
		return c
	}
	return seriesColors["b"]
}

// Plot renders series to PNG files under a base directory using gonum/plot.
type Plot struct {
	dir    string
	width  vg.Length
	height vg.Length
	logger logging.Logger
}

// NewPlot creates a PNG plot renderer writing into dir.
func NewPlot(dir string) *Plot {
	return &Plot{
		dir:    dir,
		width:  8 * vg.Inch,
		height: 5 * vg.Inch,
		logger: logging.WithFields(logging.Fields{
			"component": "plot_renderer",
			"dir":       dir,
		}),
	}
}

// Render draws one graph from the given series and saves it as name.png.
// NaN bounds leave the corresponding axis limit to autoscaling.
func (p *Plot) Render(name, xLabel, yLabel string, bounds waveform.Bounds, series ...waveform.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to render")
	}

	plt := plot.New()
	plt.X.Label.Text = xLabel
	plt.Y.Label.Text = yLabel
	plt.Add(plotter.NewGrid())

	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: x has %d points, y has %d", s.Label, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.Color = colorFor(s.Color)
		plt.Add(line)
		if s.Label != "" {
			plt.Legend.Add(s.Label, line)
		}
	}

	if !math.IsNaN(bounds.XMin) {
		plt.X.Min = bounds.XMin
	}
	if !math.IsNaN(bounds.XMax) {
		plt.X.Max = bounds.XMax
	}
	if !math.IsNaN(bounds.YMin) {
		plt.Y.Min = bounds.YMin
	}
	if !math.IsNaN(bounds.YMax) {
		plt.Y.Max = bounds.YMax
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create render directory: %w", err)
	}

	path := filepath.Join(p.dir, name+".png")
	if err := plt.Save(p.width, p.height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	p.logger.Debug("graph rendered", logging.Fields{
		"name": name, "series": len(series),
	})

	return nil
}
