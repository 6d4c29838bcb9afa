package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateTime(t *testing.T) {
	// fs=8, n=8: time axis is -0.5, -0.375, ..., 0.375.
	s := newTestState(t, 8.0, make([]complex128, 8))

	i, err := s.LocateTime(-0.5, true)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// Between two samples the ceiling and floor results bracket the value.
	i, err = s.LocateTime(-0.4, true)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = s.LocateTime(-0.4, false)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// Exactly on a sample both policies agree.
	i, err = s.LocateTime(0.25, true)
	require.NoError(t, err)
	assert.Equal(t, 6, i)

	i, err = s.LocateTime(0.25, false)
	require.NoError(t, err)
	assert.Equal(t, 6, i)

	_, err = s.LocateTime(0.5, true)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.LocateTime(-0.6, false)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Values beyond an end still resolve under the opposite policy.
	i, err = s.LocateTime(0.5, false)
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	i, err = s.LocateTime(-0.6, true)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
}

func TestLocateFrequency(t *testing.T) {
	// fs=8, n=8: frequency axis is -3..4 in 1 Hz steps.
	s := newTestState(t, 8.0, make([]complex128, 8))

	i, err := s.LocateFrequency(0, true)
	require.NoError(t, err)
	assert.Equal(t, s.CenterOffset(), i)

	i, err = s.LocateFrequency(1.5, true)
	require.NoError(t, err)
	assert.Equal(t, 5, i)

	i, err = s.LocateFrequency(1.5, false)
	require.NoError(t, err)
	assert.Equal(t, 4, i)

	_, err = s.LocateFrequency(4.5, true)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.LocateFrequency(-3.5, false)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestLocatePositiveFrequency(t *testing.T) {
	s := newTestState(t, 8.0, make([]complex128, 8))

	i, err := s.LocatePositiveFrequency(0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = s.LocatePositiveFrequency(2.2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = s.LocatePositiveFrequency(2.2, true)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = s.LocatePositiveFrequency(3.5, true)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.LocatePositiveFrequency(-0.5, false)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
