package remote

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// withRetry runs fn up to attempts times with a constant delay between
// tries. Only errors wrapped via retry.RetryableError are retried; the rest
// return immediately.
func withRetry(ctx context.Context, attempts int, delay time.Duration, fn retry.RetryFunc) error {
	if attempts < 1 {
		attempts = 1
	}
	if delay <= 0 {
		delay = time.Millisecond
	}
	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))
	return retry.Do(ctx, b, fn)
}
