package waveform

import (
	"fmt"
	"sort"
)

// searchCeiling returns the smallest index whose axis value is >= v.
func searchCeiling(axis []float64, v float64) (int, bool) {
	i := sort.Search(len(axis), func(k int) bool { return axis[k] >= v })
	if i == len(axis) {
		return 0, false
	}
	return i, true
}

// searchFloor returns the largest index whose axis value is <= v.
func searchFloor(axis []float64, v float64) (int, bool) {
	i := sort.Search(len(axis), func(k int) bool { return axis[k] > v })
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

func locate(axis []float64, v float64, ceiling bool) (int, bool) {
	if ceiling {
		return searchCeiling(axis, v)
	}
	return searchFloor(axis, v)
}

// LocateTime maps a time in seconds to the nearest index of the time axis.
// With ceiling true it returns the smallest index at or above the requested
// time, otherwise the largest index at or below it. The axes are strictly
// monotonic, so binary search is unambiguous.
func (s *State) LocateTime(t float64, ceiling bool) (int, error) {
	i, ok := locate(s.timeAxis, t, ceiling)
	if !ok {
		return 0, fmt.Errorf("%w: time %g s outside [%g, %g]",
			ErrOutOfRange, t, s.timeAxis[0], s.timeAxis[s.length-1])
	}
	return i, nil
}

// LocateFrequency maps a frequency in Hz to the nearest index of the
// centered two-sided frequency axis, with the same ceiling semantics as
// LocateTime.
func (s *State) LocateFrequency(f float64, ceiling bool) (int, error) {
	i, ok := locate(s.freqAxis, f, ceiling)
	if !ok {
		return 0, fmt.Errorf("%w: frequency %g Hz outside [%g, %g]",
			ErrOutOfRange, f, s.freqAxis[0], s.freqAxis[s.length-1])
	}
	return i, nil
}

// LocatePositiveFrequency maps a frequency in Hz to the nearest index of the
// one-sided frequency axis, with the same ceiling semantics as LocateTime.
func (s *State) LocatePositiveFrequency(f float64, ceiling bool) (int, error) {
	i, ok := locate(s.posFreqAxis, f, ceiling)
	if !ok {
		return 0, fmt.Errorf("%w: frequency %g Hz outside [%g, %g]",
			ErrOutOfRange, f, s.posFreqAxis[0], s.posFreqAxis[len(s.posFreqAxis)-1])
	}
	return i, nil
}
