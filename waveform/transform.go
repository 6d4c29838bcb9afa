package waveform

import (
	"github.com/mjibson/go-dsp/fft"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// ForwardTransform computes the discrete Fourier transform of the waveform,
// rotates it so the zero-frequency bin sits at CenterOffset, normalizes every
// bin by 1/length and stores the result as the spectrum. The one-sided power
// arrays are recomputed afterwards.
func (s *State) ForwardTransform() {
	s.logger.Debug("forward transform", logging.Fields{"length": s.length})

	raw := fft.FFT(s.waveform)
	scale := complex(1.0/float64(s.length), 0)

	centered := make([]complex128, s.length)
	for i, v := range raw {
		centered[(i+s.centerOffset)%s.length] = v * scale
	}
	s.spectrum = centered

	s.recomputePower()
}

// InverseTransform applies the inverse rotation to the spectrum, runs the
// inverse discrete Fourier transform and multiplies by length to undo the
// forward normalization, storing the result as the waveform.
//
// For a spectrum that has not been modified since the last ForwardTransform
// the round trip reproduces the waveform up to floating-point rounding.
func (s *State) InverseTransform() {
	s.logger.Debug("inverse transform", logging.Fields{"length": s.length})

	uncentered := make([]complex128, s.length)
	for i, v := range s.spectrum {
		uncentered[(i+s.length-s.centerOffset)%s.length] = v
	}

	raw := fft.IFFT(uncentered)
	scale := complex(float64(s.length), 0)

	restored := make([]complex128, s.length)
	for i, v := range raw {
		restored[i] = v * scale
	}
	s.waveform = restored
}
