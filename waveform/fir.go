package waveform

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// sinc is the normalized sinc function sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// DesignFIRKernel designs a Hamming-windowed sinc FIR kernel of the given
// tap count. Cutoffs are in Hz and must lie strictly between zero and the
// Nyquist frequency, in increasing order. With passZero true the kernel
// passes DC (low-pass for one cutoff, band-stop for two); with passZero
// false it rejects DC (high-pass for one cutoff, band-pass for two).
//
// The kernel is scaled for unity gain at DC, at the Nyquist frequency or at
// the band center, whichever lies inside the passband. A kernel whose
// passband includes Nyquist needs an odd tap count: an even-length linear
// phase kernel has a structural zero there.
func DesignFIRKernel(taps int, cutoffs []float64, passZero bool, samplingRate float64) ([]float64, error) {
	if taps < 1 {
		return nil, fmt.Errorf("tap count must be at least 1, got %d", taps)
	}
	if len(cutoffs) == 0 || len(cutoffs) > 2 {
		return nil, fmt.Errorf("expected one or two cutoff frequencies, got %d", len(cutoffs))
	}

	nyquist := samplingRate / 2.0
	prev := 0.0
	for _, c := range cutoffs {
		if c <= 0 || c >= nyquist {
			return nil, fmt.Errorf("cutoff %g Hz must lie strictly between 0 and Nyquist (%g Hz)", c, nyquist)
		}
		if c <= prev {
			return nil, fmt.Errorf("cutoff frequencies must be strictly increasing")
		}
		prev = c
	}

	// Band edges normalized to Nyquist, paired into passbands.
	var edges []float64
	if passZero {
		edges = append(edges, 0)
	}
	for _, c := range cutoffs {
		edges = append(edges, c/nyquist)
	}
	if len(edges)%2 == 1 {
		edges = append(edges, 1)
	}

	passNyquist := edges[len(edges)-1] == 1
	if passNyquist && taps%2 == 0 {
		return nil, fmt.Errorf("a kernel passing the Nyquist frequency needs an odd tap count, got %d", taps)
	}

	shift := float64(taps-1) / 2.0
	kernel := make([]float64, taps)
	for b := 0; b < len(edges); b += 2 {
		left, right := edges[b], edges[b+1]
		for n := range kernel {
			m := float64(n) - shift
			kernel[n] += right*sinc(right*m) - left*sinc(left*m)
		}
	}

	// Symmetric Hamming window.
	if taps > 1 {
		for n := range kernel {
			kernel[n] *= 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(n)/float64(taps-1))
		}
	}

	// Unity gain at the reference frequency of the first passband.
	var reference float64
	switch {
	case edges[0] == 0:
		reference = 0
	case edges[1] == 1:
		reference = 1
	default:
		reference = (edges[0] + edges[1]) / 2.0
	}
	gain := 0.0
	for n := range kernel {
		gain += kernel[n] * math.Cos(math.Pi*(float64(n)-shift)*reference)
	}
	for n := range kernel {
		kernel[n] /= gain
	}

	return kernel, nil
}

// applyFIRKernel runs a causal direct-form FIR filter over the samples:
// y[n] = sum_k kernel[k] * x[n-k], with x assumed zero before the first
// sample. The output has the same length as the input.
func applyFIRKernel(kernel []float64, x []complex128) []complex128 {
	y := make([]complex128, len(x))
	for n := range x {
		kmax := len(kernel) - 1
		if n < kmax {
			kmax = n
		}
		var acc complex128
		for k := 0; k <= kmax; k++ {
			acc += complex(kernel[k], 0) * x[n-k]
		}
		y[n] = acc
	}
	return y
}

func (s *State) applyFIR(name string, taps int, cutoffs []float64, passZero bool, refresh Refresh) error {
	kernel, err := DesignFIRKernel(taps, cutoffs, passZero, s.samplingRate)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	s.logger.Debug("fir filter", logging.Fields{
		"filter": name, "taps": taps, "cutoffs_hz": cutoffs,
	})

	s.waveform = applyFIRKernel(kernel, s.waveform)
	s.applyRefresh(refresh)
	return nil
}

// FIRLowPass convolves the waveform with a windowed-sinc low-pass kernel.
// The waveform is mutated in place with unchanged length; pass
// RefreshSpectrum to rebuild the spectrum afterwards.
func (s *State) FIRLowPass(cutoff float64, taps int, refresh Refresh) error {
	return s.applyFIR("fir_low_pass", taps, []float64{cutoff}, true, refresh)
}

// FIRHighPass convolves the waveform with a windowed-sinc high-pass kernel.
// The tap count must be odd.
func (s *State) FIRHighPass(cutoff float64, taps int, refresh Refresh) error {
	return s.applyFIR("fir_high_pass", taps, []float64{cutoff}, false, refresh)
}

// FIRBandPass convolves the waveform with a windowed-sinc band-pass kernel
// for the band [low, high] Hz.
func (s *State) FIRBandPass(low, high float64, taps int, refresh Refresh) error {
	return s.applyFIR("fir_band_pass", taps, []float64{low, high}, false, refresh)
}

// FIRBandStop convolves the waveform with a windowed-sinc band-stop kernel
// for the band [low, high] Hz. The tap count must be odd.
func (s *State) FIRBandStop(low, high float64, taps int, refresh Refresh) error {
	return s.applyFIR("fir_band_stop", taps, []float64{low, high}, true, refresh)
}
