// Package errors classifies failures from the portal backend so the outbox
// can decide whether a queued mutation is worth retrying.
package errors

import "fmt"

// Category determines how the outbox treats a failed job.
type Category int

const (
	// Retryable failures (5xx, timeouts, network errors) are retried with
	// exponential backoff.
	Retryable Category = iota

	// Permanent failures (most 4xx) are dropped after a single attempt.
	Permanent
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Retryable:
		return "Retryable"
	case Permanent:
		return "Permanent"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a failure with its retry category.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // HTTP status code, 0 for non-HTTP failures
	Body       string // response body, kept for logs
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsPermanent reports whether err should not be retried.
func IsPermanent(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Permanent
	}
	return false
}
