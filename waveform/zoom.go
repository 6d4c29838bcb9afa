package waveform

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// Range is a closed interval of time in seconds or frequency in Hz.
type Range struct {
	Low  float64
	High float64
}

// zoomView holds the sub-range snapshots produced by Zoom. Every slice is an
// independent copy; mutating the parent state afterwards does not change a
// previously taken view.
type zoomView struct {
	time     []float64
	waveform []complex128

	frequency []float64
	spectrum  []complex128

	positiveFrequency []float64
	powerDBm          []float64
}

func sliceRange(low, high float64, ceiling func(float64) (int, error), floor func(float64) (int, error)) (int, int, error) {
	lowCut, err := ceiling(low)
	if err != nil {
		return 0, 0, err
	}
	highCut, err := floor(high)
	if err != nil {
		return 0, 0, err
	}
	if lowCut > highCut {
		return 0, 0, fmt.Errorf("%w: no samples inside [%g, %g]", ErrOutOfRange, low, high)
	}
	return lowCut, highCut, nil
}

// Zoom extracts read-only snapshots of the arrays covered by the given time
// and/or frequency ranges. Bounds are inclusive: the lower bound resolves
// with a ceiling search and the upper bound with a floor search. For the
// one-sided power view a fully negative frequency range is reflected to
// positive, and a range straddling zero is clamped to start at zero.
//
// Each call replaces the parts of the zoom it computes; parts not requested
// keep their previous snapshot, if any.
func (s *State) Zoom(timeRange, freqRange *Range) error {
	if timeRange == nil && freqRange == nil {
		return fmt.Errorf("%w: zoom needs a time or frequency range", ErrOutOfRange)
	}

	if s.zoom == nil {
		s.zoom = &zoomView{}
	}

	if timeRange != nil {
		lowCut, highCut, err := sliceRange(timeRange.Low, timeRange.High,
			func(v float64) (int, error) { return s.LocateTime(v, true) },
			func(v float64) (int, error) { return s.LocateTime(v, false) })
		if err != nil {
			return err
		}

		s.zoom.time = append([]float64(nil), s.timeAxis[lowCut:highCut+1]...)
		s.zoom.waveform = append([]complex128(nil), s.waveform[lowCut:highCut+1]...)

		s.logger.Debug("time zoom", logging.Fields{
			"low_s": timeRange.Low, "high_s": timeRange.High, "samples": highCut - lowCut + 1,
		})
	}

	if freqRange != nil {
		lowCut, highCut, err := sliceRange(freqRange.Low, freqRange.High,
			func(v float64) (int, error) { return s.LocateFrequency(v, true) },
			func(v float64) (int, error) { return s.LocateFrequency(v, false) })
		if err != nil {
			return err
		}

		s.zoom.frequency = append([]float64(nil), s.freqAxis[lowCut:highCut+1]...)
		s.zoom.spectrum = append([]complex128(nil), s.spectrum[lowCut:highCut+1]...)

		// Map the requested range onto the one-sided axis.
		low, high := freqRange.Low, freqRange.High
		if low < 0 && high < 0 {
			low, high = math.Abs(high), math.Abs(low)
		} else if low < 0 && high > 0 {
			low = 0
		}
		lowCut, highCut, err = sliceRange(low, high,
			func(v float64) (int, error) { return s.LocatePositiveFrequency(v, true) },
			func(v float64) (int, error) { return s.LocatePositiveFrequency(v, false) })
		if err != nil {
			return err
		}

		s.zoom.positiveFrequency = append([]float64(nil), s.posFreqAxis[lowCut:highCut+1]...)
		s.zoom.powerDBm = append([]float64(nil), s.powerDBm[lowCut:highCut+1]...)

		s.logger.Debug("frequency zoom", logging.Fields{
			"low_hz": freqRange.Low, "high_hz": freqRange.High, "bins": len(s.zoom.frequency),
		})
	}

	return nil
}

// ZoomedTime returns a copy of the zoomed time axis.
func (s *State) ZoomedTime() ([]float64, error) {
	if s.zoom == nil || s.zoom.time == nil {
		return nil, fmt.Errorf("%w: no time zoom", ErrZoomMissing)
	}
	return append([]float64(nil), s.zoom.time...), nil
}

// ZoomedWaveform returns a copy of the zoomed waveform slice.
func (s *State) ZoomedWaveform() ([]complex128, error) {
	if s.zoom == nil || s.zoom.waveform == nil {
		return nil, fmt.Errorf("%w: no time zoom", ErrZoomMissing)
	}
	return append([]complex128(nil), s.zoom.waveform...), nil
}

// ZoomedFrequency returns a copy of the zoomed two-sided frequency axis.
func (s *State) ZoomedFrequency() ([]float64, error) {
	if s.zoom == nil || s.zoom.frequency == nil {
		return nil, fmt.Errorf("%w: no frequency zoom", ErrZoomMissing)
	}
	return append([]float64(nil), s.zoom.frequency...), nil
}

// ZoomedSpectrum returns a copy of the zoomed spectrum slice.
func (s *State) ZoomedSpectrum() ([]complex128, error) {
	if s.zoom == nil || s.zoom.spectrum == nil {
		return nil, fmt.Errorf("%w: no frequency zoom", ErrZoomMissing)
	}
	return append([]complex128(nil), s.zoom.spectrum...), nil
}

// ZoomedPositiveFrequency returns a copy of the zoomed one-sided frequency axis.
func (s *State) ZoomedPositiveFrequency() ([]float64, error) {
	if s.zoom == nil || s.zoom.positiveFrequency == nil {
		return nil, fmt.Errorf("%w: no frequency zoom", ErrZoomMissing)
	}
	return append([]float64(nil), s.zoom.positiveFrequency...), nil
}

// ZoomedPowerDBm returns a copy of the zoomed one-sided power in dBm.
func (s *State) ZoomedPowerDBm() ([]float64, error) {
	if s.zoom == nil || s.zoom.powerDBm == nil {
		return nil, fmt.Errorf("%w: no frequency zoom", ErrZoomMissing)
	}
	return append([]float64(nil), s.zoom.powerDBm...), nil
}
