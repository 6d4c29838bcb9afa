package waveform

import (
	"github.com/RyanBlaney/sonido-scope/logging"
)

// Refresh selects which domain is recomputed after a mutating operation.
// An operation that edits the spectrum leaves the waveform stale until the
// inverse transform runs, and vice versa; the policy makes that choice
// explicit instead of hiding it in defaults. RefreshNone leaves the two
// domains deliberately desynchronized.
type Refresh int

const (
	// RefreshNone leaves both arrays as the operation produced them.
	RefreshNone Refresh = iota
	// RefreshTimeDomain re-runs the inverse transform, rebuilding the
	// waveform from the mutated spectrum.
	RefreshTimeDomain
	// RefreshSpectrum re-runs the forward transform, rebuilding the
	// spectrum from the mutated waveform.
	RefreshSpectrum
)

func (r Refresh) String() string {
	switch r {
	case RefreshNone:
		return "none"
	case RefreshTimeDomain:
		return "time_domain"
	case RefreshSpectrum:
		return "spectrum"
	default:
		return "unknown"
	}
}

func (s *State) applyRefresh(r Refresh) {
	switch r {
	case RefreshTimeDomain:
		s.InverseTransform()
	case RefreshSpectrum:
		s.ForwardTransform()
	}
}

// PassBand zeroes every spectrum bin outside [low, high] Hz. The lower bound
// resolves with a ceiling search and the upper bound with a floor search, so
// both boundary bins are kept. Power arrays are recomputed, then the refresh
// policy runs.
func (s *State) PassBand(low, high float64, refresh Refresh) error {
	lowCut, err := s.LocateFrequency(low, true)
	if err != nil {
		return err
	}
	highCut, err := s.LocateFrequency(high, false)
	if err != nil {
		return err
	}

	s.logger.Debug("pass band", logging.Fields{
		"low_hz": low, "high_hz": high, "low_bin": lowCut, "high_bin": highCut,
	})

	for i := 0; i < lowCut; i++ {
		s.spectrum[i] = 0
	}
	for i := highCut + 1; i < s.length; i++ {
		s.spectrum[i] = 0
	}

	s.recomputePower()
	s.applyRefresh(refresh)
	return nil
}

// StopBand zeroes every spectrum bin inside [low, high] Hz, with the same
// bound semantics as PassBand.
func (s *State) StopBand(low, high float64, refresh Refresh) error {
	lowCut, err := s.LocateFrequency(low, true)
	if err != nil {
		return err
	}
	highCut, err := s.LocateFrequency(high, false)
	if err != nil {
		return err
	}

	s.logger.Debug("stop band", logging.Fields{
		"low_hz": low, "high_hz": high, "low_bin": lowCut, "high_bin": highCut,
	})

	for i := lowCut; i <= highCut; i++ {
		s.spectrum[i] = 0
	}

	s.recomputePower()
	s.applyRefresh(refresh)
	return nil
}

// LowPass keeps only the bins in [-frequency, frequency] Hz.
func (s *State) LowPass(frequency float64, refresh Refresh) error {
	return s.PassBand(-frequency, frequency, refresh)
}

// HighPass removes the bins in [-frequency, frequency] Hz. The bounds are
// pulled in by a quarter bin so that a cutoff landing exactly on a bin
// leaves that bin untouched.
func (s *State) HighPass(frequency float64, refresh Refresh) error {
	guard := 0.25 * s.samplingRate / float64(s.length)
	return s.StopBand(-frequency+guard, frequency-guard, refresh)
}

// BandPass keeps only the bins whose absolute frequency lies in [low, high]
// Hz. The two constituent filters run with the transform deferred; the
// refresh policy applies once after both.
func (s *State) BandPass(low, high float64, refresh Refresh) error {
	if err := s.LowPass(high, RefreshNone); err != nil {
		return err
	}
	if err := s.HighPass(low, RefreshNone); err != nil {
		return err
	}
	s.applyRefresh(refresh)
	return nil
}

// BandStop removes the bins whose absolute frequency lies in [low, high] Hz:
// the band itself and its negative-frequency mirror, with the same
// deferred-transform composition as BandPass.
func (s *State) BandStop(low, high float64, refresh Refresh) error {
	if err := s.StopBand(low, high, RefreshNone); err != nil {
		return err
	}
	if err := s.StopBand(-high, -low, RefreshNone); err != nil {
		return err
	}
	s.applyRefresh(refresh)
	return nil
}

// DCBlock zeroes exactly the zero-frequency bin.
func (s *State) DCBlock(refresh Refresh) {
	s.logger.Debug("dc block", logging.Fields{"bin": s.centerOffset})

	s.spectrum[s.centerOffset] = 0
	s.recomputePower()
	s.applyRefresh(refresh)
}

// Rectify clips the waveform in place: with keepPositive true every sample
// with a negative real part becomes zero, otherwise every sample with a
// positive real part becomes zero. The spectrum is untouched until the
// refresh policy runs; pass RefreshSpectrum to keep it consistent.
func (s *State) Rectify(keepPositive bool, refresh Refresh) {
	s.logger.Debug("rectify", logging.Fields{"keep_positive": keepPositive})

	for i, v := range s.waveform {
		if keepPositive {
			if real(v) < 0 {
				s.waveform[i] = 0
			}
		} else {
			if real(v) > 0 {
				s.waveform[i] = 0
			}
		}
	}
	s.applyRefresh(refresh)
}
