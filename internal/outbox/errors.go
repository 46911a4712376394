package outbox

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Submit after Stop has been called.
var ErrClosed = errors.New("outbox closed")

// ErrQueueFull is the target for errors.Is on *QueueFullError.
var ErrQueueFull = errors.New("outbox queue full")

// QueueFullError reports which shard rejected the job and how full it was.
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

// Error implements the error interface.
func (e *QueueFullError) Error() string {
	return fmt.Sprintf("outbox shard %d full (%d/%d)", e.Shard, e.Length, e.Capacity)
}

// Is lets errors.Is(err, ErrQueueFull) match.
func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
