package ports

import (
	"context"
	"time"
)

// Cache is the key-value adapter behind the listing cache. Values are opaque
// serialized snapshots; entries vanish on their own once ttl elapses.
type Cache interface {
	// Get returns the stored bytes. found=false with a nil error means the key is
	// absent or expired.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key for ttl. A non-positive ttl keeps it until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error
}
