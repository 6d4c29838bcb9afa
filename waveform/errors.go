package waveform

import "errors"

var (
	// ErrOutOfRange reports a time or frequency lookup outside the span
	// covered by the corresponding axis. It is never silently clamped.
	ErrOutOfRange = errors.New("requested value out of range")

	// ErrZoomMissing reports access to a zoom view before any Zoom call
	// has populated it.
	ErrZoomMissing = errors.New("zoom view has not been computed")

	// ErrInvalidDimension reports construction or resizing with an empty
	// sample array, or a non-positive sampling rate or impedance.
	ErrInvalidDimension = errors.New("invalid dimension")
)
