// Package iqfile reads interleaved I/Q capture files into complex sample
// arrays for the waveform engine.
package iqfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// ReadWAV reads a two-channel WAV file as interleaved I/Q data: channel 0
// carries the in-phase component and channel 1 the quadrature component.
// Integer samples are normalized to [-1, 1) by the source bit depth. It
// returns the complex samples and the sampling rate from the WAV header.
func ReadWAV(path string) ([]complex128, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Format.NumChannels != 2 {
		return nil, 0, fmt.Errorf("%s has %d channels, I/Q input needs 2", path, buf.Format.NumChannels)
	}
	if buf.SourceBitDepth <= 0 || buf.SourceBitDepth > 32 {
		return nil, 0, fmt.Errorf("%s has unsupported bit depth %d", path, buf.SourceBitDepth)
	}

	scale := 1.0 / float64(int64(1)<<(buf.SourceBitDepth-1))
	samples := make([]complex128, len(buf.Data)/2)
	for i := range samples {
		samples[i] = complex(
			float64(buf.Data[2*i])*scale,
			float64(buf.Data[2*i+1])*scale,
		)
	}

	logging.WithFields(logging.Fields{
		"component": "iqfile",
		"path":      path,
	}).Debug("wav file read", logging.Fields{
		"samples":     len(samples),
		"sample_rate": buf.Format.SampleRate,
		"bit_depth":   buf.SourceBitDepth,
	})

	return samples, float64(buf.Format.SampleRate), nil
}

// ReadRaw reads a headerless capture of interleaved little-endian int16 I/Q
// pairs, normalized to [-1, 1). The sampling rate must be supplied by the
// caller since the file carries no metadata.
func ReadRaw(path string, samplingRate float64) ([]complex128, error) {
	if samplingRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %g", samplingRate)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%s: size %d is not a whole number of int16 I/Q pairs", path, len(raw))
	}

	const scale = 1.0 / 32768.0
	samples := make([]complex128, len(raw)/4)
	for i := range samples {
		iPart := int16(binary.LittleEndian.Uint16(raw[4*i : 4*i+2]))
		qPart := int16(binary.LittleEndian.Uint16(raw[4*i+2 : 4*i+4]))
		samples[i] = complex(float64(iPart)*scale, float64(qPart)*scale)
	}

	return samples, nil
}
