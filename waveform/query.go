package waveform

import "fmt"

// DCVoltage returns the complex value of the zero-frequency spectrum bin.
func (s *State) DCVoltage() complex128 {
	return s.spectrum[s.centerOffset]
}

// VoltageAt returns the waveform voltage at an arbitrary time, linearly
// interpolating between the floor sample and its successor with the local
// derivative (x[i+1]-x[i])*samplingRate. It fails with ErrOutOfRange when
// the time has no floor sample or the floor is the last sample.
func (s *State) VoltageAt(t float64) (complex128, error) {
	i, err := s.LocateTime(t, false)
	if err != nil {
		return 0, err
	}
	if i+1 >= s.length {
		return 0, fmt.Errorf("%w: time %g s has no successor sample to interpolate toward", ErrOutOfRange, t)
	}

	slope := complex(s.samplingRate, 0) * (s.waveform[i+1] - s.waveform[i])
	return slope*complex(t-s.timeAxis[i], 0) + s.waveform[i], nil
}

// SpectrumAt returns the interpolated complex spectrum value at an arbitrary
// frequency, using 1/samplingRate as the local step.
func (s *State) SpectrumAt(f float64) (complex128, error) {
	i, err := s.LocateFrequency(f, false)
	if err != nil {
		return 0, err
	}
	if i+1 >= s.length {
		return 0, fmt.Errorf("%w: frequency %g Hz has no successor bin to interpolate toward", ErrOutOfRange, f)
	}

	step := complex((f-s.freqAxis[i])/s.samplingRate, 0)
	return (s.spectrum[i+1]-s.spectrum[i])*step + s.spectrum[i], nil
}

// PowerAt returns the interpolated one-sided power at an arbitrary
// non-negative frequency, in watts or, with inDBm true, converted to dBm
// with the same floored logarithm used by the power arrays.
func (s *State) PowerAt(f float64, inDBm bool) (float64, error) {
	i, err := s.LocatePositiveFrequency(f, false)
	if err != nil {
		return 0, err
	}
	if i+1 >= len(s.powerWatts) {
		return 0, fmt.Errorf("%w: frequency %g Hz has no successor bin to interpolate toward", ErrOutOfRange, f)
	}

	watts := (s.powerWatts[i+1]-s.powerWatts[i])*(f-s.posFreqAxis[i])/s.samplingRate + s.powerWatts[i]
	if inDBm {
		return dbmFromWatts(watts), nil
	}
	return watts, nil
}
