// Package waveform implements a stateful spectral-analysis engine over
// sampled complex waveforms: centered forward/inverse transforms, ideal and
// FIR frequency filtering, windowing, zero-padding, sub-range zooming,
// interpolated point queries and one-sided power derivation.
package waveform

import (
	"fmt"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// DefaultImpedance is the characteristic impedance assumed when none is given.
const DefaultImpedance = 50.0

// minimumPower is the floor applied before any logarithmic power conversion
// so that a zeroed spectrum never produces log(0).
const minimumPower = 1e-20

// State holds a sampled complex waveform together with all of its derived
// representations: the time axis, the centered two-sided frequency axis, the
// one-sided positive frequency axis, the centered normalized spectrum and the
// one-sided power arrays.
//
// All mutating operations keep the derived arrays synchronized according to
// the documented refresh policy. State is not safe for concurrent use; the
// caller must serialize access to a single instance.
type State struct {
	samplingRate float64
	impedance    float64

	length       int
	centerOffset int // index of the zero-time / zero-frequency sample

	timeAxis    []float64
	freqAxis    []float64
	posFreqAxis []float64

	waveform []complex128
	spectrum []complex128

	powerWatts []float64
	powerDBm   []float64

	zoom *zoomView // nil until the first Zoom call

	logger logging.Logger
}

type settings struct {
	impedance   float64
	noTransform bool
	logger      logging.Logger
}

// Option configures State construction.
type Option func(*settings)

// WithImpedance sets the characteristic impedance used for power scaling.
func WithImpedance(impedance float64) Option {
	return func(s *settings) {
		s.impedance = impedance
	}
}

// WithoutTransform skips the initial forward transform. The spectrum and
// power arrays stay zeroed until ForwardTransform is called explicitly.
func WithoutTransform() Option {
	return func(s *settings) {
		s.noTransform = true
	}
}

// WithLogger sets the logger used by the instance.
func WithLogger(logger logging.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// New creates a State from an initial sample array and its sampling rate.
// The samples are copied; the caller keeps ownership of the input slice.
// Unless WithoutTransform is given, the forward transform runs immediately
// so that the spectrum and power arrays are populated.
func New(samplingRate float64, samples []complex128, opts ...Option) (*State, error) {
	cfg := settings{
		impedance: DefaultImpedance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample array", ErrInvalidDimension)
	}
	if samplingRate <= 0 {
		return nil, fmt.Errorf("%w: sampling rate must be positive, got %g", ErrInvalidDimension, samplingRate)
	}
	if cfg.impedance <= 0 {
		return nil, fmt.Errorf("%w: impedance must be positive, got %g", ErrInvalidDimension, cfg.impedance)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.WithFields(logging.Fields{
			"component":     "waveform_state",
			"sampling_rate": samplingRate,
		})
	}

	s := &State{
		samplingRate: samplingRate,
		impedance:    cfg.impedance,
		waveform:     append([]complex128(nil), samples...),
		logger:       logger,
	}
	s.rebuildAxes()
	s.spectrum = make([]complex128, s.length)
	s.powerWatts = make([]float64, s.centerOffset+1)
	s.powerDBm = make([]float64, s.centerOffset+1)

	if !cfg.noTransform {
		s.ForwardTransform()
	}

	s.logger.Debug("waveform state created", logging.Fields{
		"length":        s.length,
		"center_offset": s.centerOffset,
		"impedance":     s.impedance,
	})

	return s, nil
}

// rebuildAxes recomputes length, centerOffset and every axis from the
// current waveform array. Called at construction and after any resize.
func (s *State) rebuildAxes() {
	n := len(s.waveform)
	s.length = n
	s.centerOffset = (n - 1) / 2

	timeLength := float64(n) / s.samplingRate
	binWidth := s.samplingRate / float64(n)

	s.timeAxis = make([]float64, n)
	s.freqAxis = make([]float64, n)
	for i := 0; i < n; i++ {
		s.timeAxis[i] = -timeLength/2.0 + float64(i)/s.samplingRate
		s.freqAxis[i] = float64(i-s.centerOffset) * binWidth
	}

	s.posFreqAxis = make([]float64, s.centerOffset+1)
	for k := range s.posFreqAxis {
		s.posFreqAxis[k] = float64(k) * binWidth
	}
}

// SamplingRate returns the sampling rate in Hz.
func (s *State) SamplingRate() float64 {
	return s.samplingRate
}

// Impedance returns the characteristic impedance in ohms.
func (s *State) Impedance() float64 {
	return s.impedance
}

// Length returns the current sample count.
func (s *State) Length() int {
	return s.length
}

// CenterOffset returns the index of the zero-time / zero-frequency sample.
func (s *State) CenterOffset() int {
	return s.centerOffset
}

// TimeAxis returns a copy of the time axis in seconds.
func (s *State) TimeAxis() []float64 {
	return append([]float64(nil), s.timeAxis...)
}

// FrequencyAxis returns a copy of the centered two-sided frequency axis in Hz.
func (s *State) FrequencyAxis() []float64 {
	return append([]float64(nil), s.freqAxis...)
}

// PositiveFrequencyAxis returns a copy of the one-sided frequency axis in Hz.
func (s *State) PositiveFrequencyAxis() []float64 {
	return append([]float64(nil), s.posFreqAxis...)
}

// Waveform returns a copy of the time-domain signal.
func (s *State) Waveform() []complex128 {
	return append([]complex128(nil), s.waveform...)
}

// Spectrum returns a copy of the centered normalized spectrum.
func (s *State) Spectrum() []complex128 {
	return append([]complex128(nil), s.spectrum...)
}

// PowerWatts returns a copy of the one-sided power spectrum in watts.
func (s *State) PowerWatts() []float64 {
	return append([]float64(nil), s.powerWatts...)
}

// PowerDBm returns a copy of the one-sided power spectrum in dBm.
func (s *State) PowerDBm() []float64 {
	return append([]float64(nil), s.powerDBm...)
}
