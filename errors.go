package campuslink

import (
	"errors"

	"github.com/campuslink/campuslink-go/internal/outbox"
	"github.com/campuslink/campuslink-go/internal/types"
)

// ErrBackPressure is returned when the client's outbox queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// IsBackPressure reports whether err is a back-pressure error from either
// the public sentinel or the outbox's own queue-full error.
func IsBackPressure(err error) bool {
	return errors.Is(err, ErrBackPressure) || errors.Is(err, outbox.ErrQueueFull)
}

// Re-export shared SDK errors so callers compare against single symbols.
var (
	ErrNotFound = types.ErrNotFound
	ErrClosed   = outbox.ErrClosed
)
