package syncx

import "time"

const (
	// DefaultBaseBackoff is the delay before the first retry attempt.
	DefaultBaseBackoff = time.Second

	// maxBackoff caps the exponential growth.
	maxBackoff = 30 * time.Second
)

// backoffDelay returns the sleep applied before retrying an item that has
// already failed retryCount times: base * 2^(retryCount-1), capped at 30s.
// A retryCount of zero means first attempt, no delay.
func backoffDelay(base time.Duration, retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	d := base << (retryCount - 1)
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
