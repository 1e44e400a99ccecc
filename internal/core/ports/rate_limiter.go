package ports

import (
	"context"
	"time"
)

// RateLimitRepository provides low-level atomic operations for rate limiting counters.
// It abstracts storage (e.g., Redis). Implementation should be concurrency-safe.
type RateLimitRepository interface {
	// IncrementWindow atomically increments the request counter for key in the current window
	// and ensures the counter expires after ttl. Returns the updated count and the window start time.
	IncrementWindow(ctx context.Context, key string, window time.Duration, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// RateLimiter is a keyed fixed-window limiter. Implementations MUST be safe for concurrent use.
type RateLimiter interface {
	// Allow consumes one request unit for key and reports whether it is permitted.
	// remaining: requests still allowed in the current window after this one (>=0)
	// limit: configured max requests per window
	// reset: time when the current window resets
	Allow(ctx context.Context, key string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
