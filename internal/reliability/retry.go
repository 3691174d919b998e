package reliability

import (
	"context"
	"time"
)

// IsRetryableHTTPStatus classifies HTTP status codes worth retrying against
// the LINE API and the external classifier endpoint.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// ExponentialBackoff computes a deterministic capped backoff duration.
func ExponentialBackoff(attempt int, base, cap time.Duration) time.Duration {
	if attempt <= 0 {
		return base
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}

// Retry runs fn up to attempts times, sleeping a capped exponential backoff
// between failures. fn reports whether its error is worth retrying; a
// non-retryable error or context cancellation stops immediately.
func Retry(ctx context.Context, attempts int, base, cap time.Duration, fn func() (retryable bool, err error)) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		retryable, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || attempt == attempts-1 {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ExponentialBackoff(attempt, base, cap)):
		}
	}
	return lastErr
}
