package waveform

import "math"

// binPower returns |z|^2, the power of a single spectrum bin before
// impedance scaling.
func binPower(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// dbmFromWatts converts a power in watts to dBm, flooring the argument of
// the logarithm at minimumPower so a zeroed bin never produces -Inf.
func dbmFromWatts(watts float64) float64 {
	return 10.0 * math.Log10(math.Max(watts*1e3, minimumPower))
}

// recomputePower folds the centered two-sided spectrum into the one-sided
// power arrays. The DC bin is taken alone; every other one-sided bin k sums
// the power of the centered bins at offsets -k and +k from the center. For
// even lengths the unmatched sample at the top of the two-sided array has no
// mirror partner and is excluded from the fold.
func (s *State) recomputePower() {
	c := s.centerOffset

	watts := make([]float64, c+1)
	watts[0] = binPower(s.spectrum[c]) / s.impedance
	for k := 1; k <= c; k++ {
		watts[k] = (binPower(s.spectrum[c-k]) + binPower(s.spectrum[c+k])) / s.impedance
	}

	dbm := make([]float64, c+1)
	for i, w := range watts {
		dbm[i] = dbmFromWatts(w)
	}

	s.powerWatts = watts
	s.powerDBm = dbm
}
