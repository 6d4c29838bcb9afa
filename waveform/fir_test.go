package waveform

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestFIRKernelLowPassUnityDCGain(t *testing.T) {
	for _, taps := range []int{11, 32, 101} {
		kernel, err := DesignFIRKernel(taps, []float64{0.2}, true, 2.0)
		require.NoError(t, err)
		require.Len(t, kernel, taps)

		// Low-pass kernels are normalized for unity gain at DC.
		assert.InDelta(t, 1.0, floats.Sum(kernel), 1e-12)
	}
}

func TestFIRKernelSymmetry(t *testing.T) {
	kernel, err := DesignFIRKernel(33, []float64{0.25}, true, 2.0)
	require.NoError(t, err)

	for i := range kernel {
		assert.InDelta(t, kernel[i], kernel[len(kernel)-1-i], 1e-12, "tap %d", i)
	}
}

func TestFIRKernelHighPassUnityNyquistGain(t *testing.T) {
	kernel, err := DesignFIRKernel(31, []float64{0.3}, false, 2.0)
	require.NoError(t, err)

	// Gain at Nyquist: sum of kernel[n]*cos(pi*(n-shift)).
	shift := float64(len(kernel)-1) / 2.0
	gain := 0.0
	for n, k := range kernel {
		gain += k * math.Cos(math.Pi*(float64(n)-shift))
	}
	assert.InDelta(t, 1.0, gain, 1e-12)
}

func TestFIRKernelEvenTapsNyquistError(t *testing.T) {
	_, err := DesignFIRKernel(30, []float64{0.3}, false, 2.0)
	assert.Error(t, err)

	_, err = DesignFIRKernel(30, []float64{0.2, 0.4}, true, 2.0)
	assert.Error(t, err)

	// Band-pass has no Nyquist constraint.
	_, err = DesignFIRKernel(30, []float64{0.2, 0.4}, false, 2.0)
	assert.NoError(t, err)
}

func TestFIRKernelCutoffValidation(t *testing.T) {
	_, err := DesignFIRKernel(11, []float64{0}, true, 2.0)
	assert.Error(t, err)

	_, err = DesignFIRKernel(11, []float64{1.0}, true, 2.0)
	assert.Error(t, err)

	_, err = DesignFIRKernel(11, []float64{0.4, 0.2}, false, 2.0)
	assert.Error(t, err)

	_, err = DesignFIRKernel(11, nil, true, 2.0)
	assert.Error(t, err)
}

func TestApplyFIRKernelIdentity(t *testing.T) {
	x := randomWaveform(32, 7)
	y := applyFIRKernel([]float64{1}, x)
	require.Len(t, y, len(x))
	for i := range x {
		requireComplexInDelta(t, x[i], y[i], 1e-15)
	}
}

func TestApplyFIRKernelCausalDelay(t *testing.T) {
	// A pure one-sample delay kernel shifts the signal without wrapping.
	x := []complex128{1, 2, 3, 4}
	y := applyFIRKernel([]float64{0, 1}, x)
	assert.Equal(t, []complex128{0, 1, 2, 3}, y)
}

func TestFIRLowPassTwoTone(t *testing.T) {
	const n, fs = 512, 512.0
	s := newTestState(t, fs, twoTone(n, fs, 8.0, 100.0))

	require.NoError(t, s.FIRLowPass(30.0, 101, RefreshSpectrum))

	require.Len(t, s.Waveform(), n)
	c := s.CenterOffset()
	spectrum := s.Spectrum()
	low := cmplx.Abs(spectrum[c+8])
	high := cmplx.Abs(spectrum[c+100])

	// The startup transient smears a little energy, so compare the two
	// tones rather than demanding an exactly empty stop band.
	assert.Greater(t, low, 0.5)
	assert.Less(t, high, low*1e-2)
}

func TestFIRHighPassTwoTone(t *testing.T) {
	const n, fs = 512, 512.0
	s := newTestState(t, fs, twoTone(n, fs, 8.0, 100.0))

	require.NoError(t, s.FIRHighPass(30.0, 101, RefreshSpectrum))

	c := s.CenterOffset()
	spectrum := s.Spectrum()
	assert.Less(t, cmplx.Abs(spectrum[c+8]), 1e-2)
	assert.Greater(t, cmplx.Abs(spectrum[c+100]), 0.5)
}

func TestFIRBandPassTwoTone(t *testing.T) {
	const n, fs = 512, 512.0
	s := newTestState(t, fs, twoTone(n, fs, 8.0, 100.0))

	require.NoError(t, s.FIRBandPass(80.0, 120.0, 101, RefreshSpectrum))

	c := s.CenterOffset()
	spectrum := s.Spectrum()
	assert.Less(t, cmplx.Abs(spectrum[c+8]), 1e-2)
	assert.Greater(t, cmplx.Abs(spectrum[c+100]), 0.5)
}

func TestFIRBandStopTwoTone(t *testing.T) {
	const n, fs = 512, 512.0
	s := newTestState(t, fs, twoTone(n, fs, 8.0, 100.0))

	require.NoError(t, s.FIRBandStop(80.0, 120.0, 101, RefreshSpectrum))

	c := s.CenterOffset()
	spectrum := s.Spectrum()
	assert.Greater(t, cmplx.Abs(spectrum[c+8]), 0.5)
	assert.Less(t, cmplx.Abs(spectrum[c+100]), 1e-2)
}

func TestFIRInvalidArguments(t *testing.T) {
	const n, fs = 64, 64.0
	s := newTestState(t, fs, testTone(n, fs, 5.0))

	assert.Error(t, s.FIRLowPass(0, 11, RefreshNone))
	assert.Error(t, s.FIRLowPass(fs, 11, RefreshNone))
	assert.Error(t, s.FIRHighPass(10.0, 10, RefreshNone)) // even taps
	assert.Error(t, s.FIRBandPass(20.0, 10.0, 11, RefreshNone))
}
