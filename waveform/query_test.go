package waveform

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDCVoltage(t *testing.T) {
	const n, fs = 32, 32.0

	constant := make([]complex128, n)
	for i := range constant {
		constant[i] = complex(0.75, -0.25)
	}
	s := newTestState(t, fs, constant)
	requireComplexInDelta(t, complex(0.75, -0.25), s.DCVoltage(), 1e-12)

	// A pure tone away from DC leaves the zero bin empty.
	s = newTestState(t, fs, testTone(n, fs, 5.0))
	assert.Less(t, cmplx.Abs(s.DCVoltage()), 1e-12)
}

func TestVoltageAtSampleTimes(t *testing.T) {
	const n, fs = 32, 32.0
	s := newTestState(t, fs, randomWaveform(n, 21))

	w := s.Waveform()
	tt := s.TimeAxis()
	for _, i := range []int{0, 1, n / 2, n - 2} {
		v, err := s.VoltageAt(tt[i])
		require.NoError(t, err)
		requireComplexInDelta(t, w[i], v, 1e-12)
	}
}

func TestVoltageAtMidpoint(t *testing.T) {
	const n, fs = 32, 32.0
	s := newTestState(t, fs, randomWaveform(n, 22))

	w := s.Waveform()
	tt := s.TimeAxis()
	i := 10
	mid := (tt[i] + tt[i+1]) / 2.0

	v, err := s.VoltageAt(mid)
	require.NoError(t, err)
	requireComplexInDelta(t, (w[i]+w[i+1])/2.0, v, 1e-12)
}

func TestVoltageAtErrors(t *testing.T) {
	const n, fs = 16, 16.0
	s := newTestState(t, fs, randomWaveform(n, 23))
	tt := s.TimeAxis()

	_, err := s.VoltageAt(tt[0] - 1.0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// The last sample has nothing to interpolate toward.
	_, err = s.VoltageAt(tt[n-1])
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSpectrumAtBinFrequencies(t *testing.T) {
	const n, fs = 32, 32.0
	s := newTestState(t, fs, randomWaveform(n, 24))

	spec := s.Spectrum()
	f := s.FrequencyAxis()
	for _, i := range []int{0, s.CenterOffset(), n - 2} {
		v, err := s.SpectrumAt(f[i])
		require.NoError(t, err)
		requireComplexInDelta(t, spec[i], v, 1e-12)
	}
}

func TestSpectrumAtBetweenBins(t *testing.T) {
	const n, fs = 32, 32.0
	s := newTestState(t, fs, randomWaveform(n, 25))

	spec := s.Spectrum()
	f := s.FrequencyAxis()
	i := 12
	query := f[i] + 0.4

	v, err := s.SpectrumAt(query)
	require.NoError(t, err)

	// The interpolation step is normalized by the sampling rate.
	step := complex((query-f[i])/fs, 0)
	requireComplexInDelta(t, spec[i]+(spec[i+1]-spec[i])*step, v, 1e-12)
}

func TestSpectrumAtErrors(t *testing.T) {
	const n, fs = 16, 16.0
	s := newTestState(t, fs, randomWaveform(n, 26))
	f := s.FrequencyAxis()

	_, err := s.SpectrumAt(f[0] - 1.0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.SpectrumAt(f[n-1])
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPowerAtBinFrequencies(t *testing.T) {
	const n, fs = 33, 33.0
	s := newTestState(t, fs, testTone(n, fs, 5.0))

	watts := s.PowerWatts()
	dbm := s.PowerDBm()
	pf := s.PositiveFrequencyAxis()
	for _, i := range []int{0, 5, len(pf) - 2} {
		w, err := s.PowerAt(pf[i], false)
		require.NoError(t, err)
		assert.InDelta(t, watts[i], w, 1e-15)

		d, err := s.PowerAt(pf[i], true)
		require.NoError(t, err)
		assert.InDelta(t, dbm[i], d, 1e-9)
	}
}

func TestPowerAtBetweenBins(t *testing.T) {
	const n, fs = 33, 33.0
	s := newTestState(t, fs, testTone(n, fs, 5.0))

	watts := s.PowerWatts()
	pf := s.PositiveFrequencyAxis()
	i := 5
	query := pf[i] + 0.25

	w, err := s.PowerAt(query, false)
	require.NoError(t, err)
	want := watts[i] + (watts[i+1]-watts[i])*(query-pf[i])/fs
	assert.InDelta(t, want, w, 1e-15)
}

func TestPowerAtErrors(t *testing.T) {
	const n, fs = 16, 16.0
	s := newTestState(t, fs, testTone(n, fs, 3.0))
	pf := s.PositiveFrequencyAxis()

	_, err := s.PowerAt(-1.0, false)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.PowerAt(pf[len(pf)-1], false)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
