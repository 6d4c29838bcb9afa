package waveform

import (
	"fmt"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// ZeroFill appends extra zero-valued samples to the waveform. Length and
// center offset change, so every derived axis is rebuilt from scratch and
// the forward transform runs unconditionally. This is the only operation
// that changes array lengths; a previously taken zoom snapshot is unaffected
// because zoom views are independent copies.
func (s *State) ZeroFill(extra int) error {
	if extra < 0 {
		return fmt.Errorf("%w: zero-fill count must be non-negative, got %d", ErrInvalidDimension, extra)
	}

	s.logger.Debug("zero fill", logging.Fields{
		"old_length": s.length, "extra": extra,
	})

	s.waveform = append(s.waveform, make([]complex128, extra)...)
	s.rebuildAxes()
	s.ForwardTransform()
	return nil
}
