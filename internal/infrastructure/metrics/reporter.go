package metrics

import (
	"context"
	"time"
)

// RunEvery calls fn immediately and then on every tick until ctx is done.
// fn is responsible for its own error handling.
func RunEvery(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	fn(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
