package fault

import (
	"context"
	"time"
)

// Retry re-invokes op until it succeeds or maxRetries re-attempts are
// exhausted, sleeping baseDelay * 2^attempt between attempts.
//
// Retry does not classify errors or decide which kinds are worth retrying;
// that policy belongs to the caller. Deterministic failures (canonicalization,
// validation) should not be passed here.
//
// Worst-case total sleep is baseDelay * (2^maxRetries - 1). Cancelling ctx
// aborts the wait and returns ctx.Err().
func Retry[T any](ctx context.Context, maxRetries int, baseDelay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if attempt == maxRetries {
			break
		}

		delay := baseDelay << uint(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
