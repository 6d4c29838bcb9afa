package waveform

import (
	"math"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// ApplyHanning multiplies the waveform element-wise by a periodic Hann
// window evaluated over [0, length). The spectrum is not refreshed; the
// caller decides when to re-run the forward transform.
func (s *State) ApplyHanning() {
	s.logger.Debug("hanning window", logging.Fields{"length": s.length})

	for i := range s.waveform {
		w := 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(s.length))
		s.waveform[i] *= complex(w, 0)
	}
}

// ApplyHamming multiplies the waveform element-wise by a periodic Hamming
// window evaluated over [0, length). The spectrum is not refreshed.
func (s *State) ApplyHamming() {
	s.logger.Debug("hamming window", logging.Fields{"length": s.length})

	for i := range s.waveform {
		w := 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(i)/float64(s.length))
		s.waveform[i] *= complex(w, 0)
	}
}
