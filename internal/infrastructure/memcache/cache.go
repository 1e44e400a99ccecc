// Package memcache is an in-process ports.Cache for single-instance deployments
// and tests. Entries are not shared between replicas.
package memcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores byte slices in a go-cache instance with per-entry expiry.
type Cache struct {
	c *gocache.Cache
}

// New creates a cache whose expired entries are purged every cleanupInterval.
func New(cleanupInterval time.Duration) *Cache {
	return &Cache{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

func (m *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.c.Set(key, stored, ttl)
	return nil
}

func (m *Cache) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
