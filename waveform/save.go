package waveform

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Exporter is the data-export sink contract: it persists a set of named
// numeric columns (all of equal length) under a header row.
type Exporter interface {
	Export(name string, header []string, columns ...[]float64) error
}

// Series is a single plotted line.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Color string // color letter: r, g, b, k, y, m, c; empty for default
}

// Bounds are optional axis limits for a rendered graph. NaN means the
// renderer picks the limit automatically.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// AutoBounds returns bounds that leave every limit to the renderer.
func AutoBounds() Bounds {
	nan := math.NaN()
	return Bounds{XMin: nan, XMax: nan, YMin: nan, YMax: nan}
}

// Renderer is the rendering sink contract: it draws one logical graph from
// one or more series.
type Renderer interface {
	Render(name, xLabel, yLabel string, bounds Bounds, series ...Series) error
}

// metricPrefix maps SI prefixes to their scale factor. Exported values are
// divided by the factor of the prefix chosen for their axis.
var metricPrefix = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12,
	"G": 1e9, "M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"": 1.0,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "u": 1e-6, "µ": 1e-6,
	"n": 1e-9, "p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
}

func prefixScale(prefix string) float64 {
	if v, ok := metricPrefix[prefix]; ok {
		return v
	}
	return 1.0
}

// SaveOptions controls the tables and graphs emitted by Save.
type SaveOptions struct {
	// FileName is the base name of every emitted table and graph.
	// Defaults to a timestamp.
	FileName string

	// SI metric prefixes per axis, e.g. "m" for milliseconds or "M" for
	// megahertz. Values are scaled accordingly and the unit appears in
	// headers and axis labels.
	TimePrefix      string
	VoltagePrefix   string
	FrequencyPrefix string
	PowerPrefix     string

	// WaveformDisplay and SpectrumDisplay select the plotted components:
	// "r" for the real part, "i" for the imaginary part, "ri" for both.
	// Defaults: "r" for the waveform, "ri" for the spectrum.
	WaveformDisplay string
	SpectrumDisplay string

	// Axis bounds per graph; the zero value means fully automatic.
	WaveformBounds     Bounds
	SpectrumBounds     Bounds
	PowerBounds        Bounds
	WaveformZoomBounds Bounds
	SpectrumZoomBounds Bounds
	PowerZoomBounds    Bounds
}

func (o SaveOptions) withDefaults() SaveOptions {
	if o.FileName == "" {
		o.FileName = time.Now().Format("20060102_150405")
	}
	if o.WaveformDisplay == "" {
		o.WaveformDisplay = "r"
	}
	if o.SpectrumDisplay == "" {
		o.SpectrumDisplay = "ri"
	}
	zero := Bounds{}
	for _, b := range []*Bounds{
		&o.WaveformBounds, &o.SpectrumBounds, &o.PowerBounds,
		&o.WaveformZoomBounds, &o.SpectrumZoomBounds, &o.PowerZoomBounds,
	} {
		if *b == zero {
			*b = AutoBounds()
		}
	}
	return o
}

func scaled(values []float64, prefix string) []float64 {
	out := make([]float64, len(values))
	floats.ScaleTo(out, 1.0/prefixScale(prefix), values)
	return out
}

func realParts(values []complex128) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = real(v)
	}
	return out
}

func imagParts(values []complex128) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = imag(v)
	}
	return out
}

func unitLabel(quantity, prefix, unit string) string {
	return fmt.Sprintf("%s (%s%s)", quantity, prefix, unit)
}

// complexSeries builds the real/imaginary series requested by a display
// string, the real part in red and the imaginary part in blue.
func complexSeries(x []float64, y []complex128, yPrefix, display string) []Series {
	var series []Series
	if strings.Contains(display, "r") {
		series = append(series, Series{
			X: x, Y: scaled(realParts(y), yPrefix), Label: "real", Color: "r",
		})
	}
	if strings.Contains(display, "i") {
		series = append(series, Series{
			X: x, Y: scaled(imagParts(y), yPrefix), Label: "imag", Color: "b",
		})
	}
	return series
}

// Save emits the waveform, spectrum and power tables through the export
// sink and the corresponding graphs through the render sink, plus the
// zoomed graphs when a zoom snapshot exists. A nil sink skips that output;
// a missing zoom only skips the zoomed graphs.
func (s *State) Save(exp Exporter, rend Renderer, opts SaveOptions) error {
	opts = opts.withDefaults()

	timeLabel := unitLabel("Time", opts.TimePrefix, "s")
	voltLabel := unitLabel("Voltage", opts.VoltagePrefix, "V")
	freqLabel := unitLabel("Frequency", opts.FrequencyPrefix, "Hz")
	powerLabel := unitLabel("Power", opts.PowerPrefix, "dBm")

	timeScaled := scaled(s.timeAxis, opts.TimePrefix)
	freqScaled := scaled(s.freqAxis, opts.FrequencyPrefix)
	posFreqScaled := scaled(s.posFreqAxis, opts.FrequencyPrefix)

	if exp != nil {
		if err := exp.Export("waveform_"+opts.FileName,
			[]string{timeLabel, voltLabel + " (real)", voltLabel + " (imag)"},
			timeScaled,
			scaled(realParts(s.waveform), opts.VoltagePrefix),
			scaled(imagParts(s.waveform), opts.VoltagePrefix),
		); err != nil {
			return fmt.Errorf("export waveform: %w", err)
		}

		if err := exp.Export("spectrum_"+opts.FileName,
			[]string{freqLabel, voltLabel + " (real)", voltLabel + " (imag)"},
			freqScaled,
			scaled(realParts(s.spectrum), opts.VoltagePrefix),
			scaled(imagParts(s.spectrum), opts.VoltagePrefix),
		); err != nil {
			return fmt.Errorf("export spectrum: %w", err)
		}

		if err := exp.Export("power_"+opts.FileName,
			[]string{freqLabel, powerLabel},
			posFreqScaled,
			scaled(s.powerDBm, opts.PowerPrefix),
		); err != nil {
			return fmt.Errorf("export power: %w", err)
		}
	}

	if rend == nil {
		return nil
	}

	if err := rend.Render("waveform_"+opts.FileName, timeLabel, voltLabel, opts.WaveformBounds,
		complexSeries(timeScaled, s.waveform, opts.VoltagePrefix, opts.WaveformDisplay)...); err != nil {
		return fmt.Errorf("render waveform: %w", err)
	}

	if err := rend.Render("spectrum_"+opts.FileName, freqLabel, voltLabel, opts.SpectrumBounds,
		complexSeries(freqScaled, s.spectrum, opts.VoltagePrefix, opts.SpectrumDisplay)...); err != nil {
		return fmt.Errorf("render spectrum: %w", err)
	}

	if err := rend.Render("power_"+opts.FileName, freqLabel, powerLabel, opts.PowerBounds,
		Series{X: posFreqScaled, Y: scaled(s.powerDBm, opts.PowerPrefix)}); err != nil {
		return fmt.Errorf("render power: %w", err)
	}

	if err := s.renderZoom(rend, opts, timeLabel, voltLabel, freqLabel, powerLabel); err != nil {
		return err
	}

	return nil
}

// renderZoom draws the zoomed counterparts of the three graphs. Views that
// have never been computed are skipped, matching the behavior of omitting
// zoom plots when no zoom was requested.
func (s *State) renderZoom(rend Renderer, opts SaveOptions, timeLabel, voltLabel, freqLabel, powerLabel string) error {
	zoomTime, err := s.ZoomedTime()
	switch {
	case errors.Is(err, ErrZoomMissing):
		s.logger.Debug("no time zoom, skipping zoomed waveform graph")
	case err != nil:
		return err
	default:
		zoomWaveform, err := s.ZoomedWaveform()
		if err != nil {
			return err
		}
		if err := rend.Render("waveform_zoom_"+opts.FileName, timeLabel, voltLabel, opts.WaveformZoomBounds,
			complexSeries(scaled(zoomTime, opts.TimePrefix), zoomWaveform, opts.VoltagePrefix, opts.WaveformDisplay)...); err != nil {
			return fmt.Errorf("render zoomed waveform: %w", err)
		}
	}

	zoomFreq, err := s.ZoomedFrequency()
	switch {
	case errors.Is(err, ErrZoomMissing):
		s.logger.Debug("no frequency zoom, skipping zoomed spectrum and power graphs")
		return nil
	case err != nil:
		return err
	}

	zoomSpectrum, err := s.ZoomedSpectrum()
	if err != nil {
		return err
	}
	if err := rend.Render("spectrum_zoom_"+opts.FileName, freqLabel, voltLabel, opts.SpectrumZoomBounds,
		complexSeries(scaled(zoomFreq, opts.FrequencyPrefix), zoomSpectrum, opts.VoltagePrefix, opts.SpectrumDisplay)...); err != nil {
		return fmt.Errorf("render zoomed spectrum: %w", err)
	}

	zoomPosFreq, err := s.ZoomedPositiveFrequency()
	if err != nil {
		return err
	}
	zoomPower, err := s.ZoomedPowerDBm()
	if err != nil {
		return err
	}
	if err := rend.Render("power_zoom_"+opts.FileName, freqLabel, powerLabel, opts.PowerZoomBounds,
		Series{X: scaled(zoomPosFreq, opts.FrequencyPrefix), Y: scaled(zoomPower, opts.PowerPrefix)}); err != nil {
		return fmt.Errorf("render zoomed power: %w", err)
	}

	return nil
}
