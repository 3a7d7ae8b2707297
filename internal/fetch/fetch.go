// Package fetch retrieves live listing data from the retailers. The
// shared HTTP client handles compression, user-agent rotation, and
// retry classification; each store client builds its own requests on
// top of it.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Fetcher retrieves the raw bytes at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Name returns the fetcher identifier.
	Name() string
}

// WithRetry wraps a fetch call in a retry loop. Only errors flagged
// retryable are retried; a 429 waits out its Retry-After before the
// next attempt.
func WithRetry(ctx context.Context, f Fetcher, url string, maxRetries int, retryDelay time.Duration, logger *slog.Logger) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay
			var fetchErr *types.FetchError
			if errors.As(lastErr, &fetchErr) && fetchErr.RetryAfter > delay {
				delay = fetchErr.RetryAfter
			}
			logger.Warn("retrying fetch",
				"url", url,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := f.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var fetchErr *types.FetchError
		if errors.As(err, &fetchErr) && !fetchErr.Retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

// RandomDelay returns the base duration with up to 25% jitter either way.
func RandomDelay(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	jitter := float64(base) * 0.25
	return base + time.Duration(rand.Float64()*2*jitter-jitter)
}
