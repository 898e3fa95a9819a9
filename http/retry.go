package http

import (
	"context"
	"time"

	"github.com/fwojciec/kickprof"
)

// Ensure RetryFetcher implements kickprof.Fetcher at compile time.
var _ kickprof.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher decorates a Fetcher with exponential-backoff retries.
// Retry policy belongs to the transport; the extraction core treats a
// fetch result as final.
type RetryFetcher struct {
	next   kickprof.Fetcher
	delays []time.Duration
}

// RetryOption configures a RetryFetcher.
type RetryOption func(*RetryFetcher)

// WithDelays sets the delays between attempts. The number of retries equals
// the number of delays. Useful for testing without waiting for real delays.
func WithDelays(delays []time.Duration) RetryOption {
	return func(f *RetryFetcher) {
		f.delays = delays
	}
}

// NewRetryFetcher creates a RetryFetcher wrapping next.
// By default it retries up to 3 times (4 total attempts) with delays of
// 1s, 2s, 4s.
func NewRetryFetcher(next kickprof.Fetcher, opts ...RetryOption) *RetryFetcher {
	f := &RetryFetcher{
		next:   next,
		delays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch attempts the fetch, retrying on error until the delays are
// exhausted. The last error is returned if every attempt fails.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
