package errors

import "fmt"

// FromStatus maps an HTTP status code to a classified error.
// 408 and 429 are retryable despite being 4xx; every other 4xx is permanent;
// 5xx and anything unexpected is retryable.
func FromStatus(statusCode int, body string, operation string) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// FromNetwork wraps a transport-level failure. Network errors are always
// retryable since they may be transient.
func FromNetwork(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Retryable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

func categoryFor(statusCode int) Category {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Retryable
		default:
			return Permanent
		}
	default:
		return Retryable
	}
}
