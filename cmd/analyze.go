package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-scope/export"
	"github.com/RyanBlaney/sonido-scope/iqfile"
	"github.com/RyanBlaney/sonido-scope/logging"
	"github.com/RyanBlaney/sonido-scope/render"
	"github.com/RyanBlaney/sonido-scope/waveform"
)

var recipePath string

// recipe describes one analysis run: the input capture, the sequence of
// operations to apply and the outputs to emit.
type recipe struct {
	Input        string      `yaml:"input"`
	SamplingRate float64     `yaml:"sampling_rate"` // required for raw captures, overrides WAV header if set
	Impedance    float64     `yaml:"impedance"`     // ohms; 0 means the engine default
	Operations   []operation `yaml:"operations"`
	Output       outputSpec  `yaml:"output"`
}

type operation struct {
	Op           string    `yaml:"op"`
	Frequency    float64   `yaml:"frequency"`
	Low          float64   `yaml:"low"`
	High         float64   `yaml:"high"`
	Taps         int       `yaml:"taps"`
	Samples      int       `yaml:"samples"`
	Time         []float64 `yaml:"time"`          // [low, high] seconds, zoom only
	Band         []float64 `yaml:"band"`          // [low, high] Hz, zoom only
	KeepPositive *bool     `yaml:"keep_positive"` // rectify only
}

type outputSpec struct {
	CSVDir          string `yaml:"csv_dir"`
	PNGDir          string `yaml:"png_dir"`
	Name            string `yaml:"name"`
	TimePrefix      string `yaml:"time_prefix"`
	VoltagePrefix   string `yaml:"voltage_prefix"`
	FrequencyPrefix string `yaml:"frequency_prefix"`
	PowerPrefix     string `yaml:"power_prefix"`
	WaveformDisplay string `yaml:"waveform_display"`
	SpectrumDisplay string `yaml:"spectrum_display"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run an analysis recipe over an I/Q capture",
	Long: `Reads an I/Q capture (two-channel WAV, or raw interleaved int16 with an
explicit sampling rate), applies the recipe's filter/window/zoom operations in
order, and writes the waveform, spectrum and power tables and graphs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(recipePath)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "analysis recipe file (yaml)")
	analyzeCmd.MarkFlagRequired("recipe")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(path string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "analyze",
		"recipe":    path,
	})

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}
	var r recipe
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("parse recipe: %w", err)
	}
	if r.Input == "" {
		return fmt.Errorf("recipe has no input file")
	}

	samples, rate, err := loadCapture(r)
	if err != nil {
		return err
	}
	logger.Info("capture loaded", logging.Fields{
		"input":         r.Input,
		"samples":       len(samples),
		"sampling_rate": rate,
	})

	opts := []waveform.Option{}
	if r.Impedance > 0 {
		opts = append(opts, waveform.WithImpedance(r.Impedance))
	}
	state, err := waveform.New(rate, samples, opts...)
	if err != nil {
		return fmt.Errorf("build waveform state: %w", err)
	}

	for i, op := range r.Operations {
		if err := applyOperation(state, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
		logger.Debug("operation applied", logging.Fields{"index": i, "op": op.Op})
	}

	return saveOutputs(state, r.Output)
}

func loadCapture(r recipe) ([]complex128, float64, error) {
	if strings.EqualFold(filepath.Ext(r.Input), ".wav") {
		samples, rate, err := iqfile.ReadWAV(r.Input)
		if err != nil {
			return nil, 0, err
		}
		if r.SamplingRate > 0 {
			rate = r.SamplingRate
		}
		return samples, rate, nil
	}

	if r.SamplingRate <= 0 {
		return nil, 0, fmt.Errorf("raw capture %s needs an explicit sampling_rate", r.Input)
	}
	samples, err := iqfile.ReadRaw(r.Input, r.SamplingRate)
	if err != nil {
		return nil, 0, err
	}
	return samples, r.SamplingRate, nil
}

// applyOperation dispatches one recipe step. Ideal filters refresh the time
// domain and time-domain operations refresh the spectrum, so both arrays
// stay consistent after every step.
func applyOperation(s *waveform.State, op operation) error {
	switch op.Op {
	case "hanning":
		s.ApplyHanning()
		s.ForwardTransform()
		return nil
	case "hamming":
		s.ApplyHamming()
		s.ForwardTransform()
		return nil
	case "low_pass":
		return s.LowPass(op.Frequency, waveform.RefreshTimeDomain)
	case "high_pass":
		return s.HighPass(op.Frequency, waveform.RefreshTimeDomain)
	case "pass_band":
		return s.PassBand(op.Low, op.High, waveform.RefreshTimeDomain)
	case "stop_band":
		return s.StopBand(op.Low, op.High, waveform.RefreshTimeDomain)
	case "band_pass":
		return s.BandPass(op.Low, op.High, waveform.RefreshTimeDomain)
	case "band_stop":
		return s.BandStop(op.Low, op.High, waveform.RefreshTimeDomain)
	case "dc_block":
		s.DCBlock(waveform.RefreshTimeDomain)
		return nil
	case "rectify":
		keep := true
		if op.KeepPositive != nil {
			keep = *op.KeepPositive
		}
		s.Rectify(keep, waveform.RefreshSpectrum)
		return nil
	case "fir_low_pass":
		return s.FIRLowPass(op.Frequency, op.Taps, waveform.RefreshSpectrum)
	case "fir_high_pass":
		return s.FIRHighPass(op.Frequency, op.Taps, waveform.RefreshSpectrum)
	case "fir_band_pass":
		return s.FIRBandPass(op.Low, op.High, op.Taps, waveform.RefreshSpectrum)
	case "fir_band_stop":
		return s.FIRBandStop(op.Low, op.High, op.Taps, waveform.RefreshSpectrum)
	case "zero_fill":
		return s.ZeroFill(op.Samples)
	case "zoom":
		var timeRange, freqRange *waveform.Range
		if len(op.Time) == 2 {
			timeRange = &waveform.Range{Low: op.Time[0], High: op.Time[1]}
		}
		if len(op.Band) == 2 {
			freqRange = &waveform.Range{Low: op.Band[0], High: op.Band[1]}
		}
		return s.Zoom(timeRange, freqRange)
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
}

func saveOutputs(s *waveform.State, out outputSpec) error {
	csvDir := out.CSVDir
	if csvDir == "" {
		csvDir = filepath.Join("DATA", "CSV")
	}
	pngDir := out.PNGDir
	if pngDir == "" {
		pngDir = filepath.Join("DATA", "PNG")
	}

	return s.Save(export.NewCSV(csvDir), render.NewPlot(pngDir), waveform.SaveOptions{
		FileName:        out.Name,
		TimePrefix:      out.TimePrefix,
		VoltagePrefix:   out.VoltagePrefix,
		FrequencyPrefix: out.FrequencyPrefix,
		PowerPrefix:     out.PowerPrefix,
		WaveformDisplay: out.WaveformDisplay,
		SpectrumDisplay: out.SpectrumDisplay,
	})
}
