package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
)

const (
	// DefaultListingTTL bounds how stale a cached listing can be.
	DefaultListingTTL = 60 * time.Second
	// DefaultListingLoadTimeout bounds a shared store read once it no longer
	// follows the request that started it.
	DefaultListingLoadTimeout = 10 * time.Second
)

// ListingCache is a read-through cache for a single "full listing" entry.
// Only the aggregate listing is cached under one fixed key; there are no
// per-entity entries. Writers must call Invalidate after their store change
// commits. Loads that started before an Invalidate are neither shared with
// later readers nor written back to the cache.
type ListingCache[T any] struct {
	cache       ports.Cache
	key         string
	cacheType   string
	ttl         time.Duration
	loadTimeout time.Duration
	load        func(ctx context.Context) ([]T, error)
	sf          singleflight.Group
	logger      *logrus.Logger
	metrics     ports.OperationMetrics

	// mu guards generation and orders populate against Invalidate.
	mu         sync.Mutex
	generation uint64
}

// ListingCacheConfig groups the fixed parameters of a ListingCache.
type ListingCacheConfig struct {
	// Key is the cache key holding the serialized listing.
	Key string
	// CacheType labels hit/miss metrics.
	CacheType   string
	TTL         time.Duration
	LoadTimeout time.Duration
}

// NewListingCache wires a loader to a cache adapter. A nil cache turns every
// lookup into a store read.
func NewListingCache[T any](cache ports.Cache, cfg ListingCacheConfig, load func(ctx context.Context) ([]T, error), logger *logrus.Logger, metrics ports.OperationMetrics) *ListingCache[T] {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultListingTTL
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultListingLoadTimeout
	}
	if cfg.CacheType == "" {
		cfg.CacheType = cfg.Key
	}
	return &ListingCache[T]{
		cache:       cache,
		key:         cfg.Key,
		cacheType:   cfg.CacheType,
		ttl:         cfg.TTL,
		loadTimeout: cfg.LoadTimeout,
		load:        load,
		logger:      logger,
		metrics:     metrics,
	}
}

// Get returns the listing and whether it came from the cache. Store failures are
// returned as-is and nothing is cached. A failing or corrupt cache read is
// treated as a miss. A caller whose ctx ends while waiting gets ctx.Err(); the
// shared load keeps running for the other callers.
func (l *ListingCache[T]) Get(ctx context.Context) ([]T, bool, error) {
	gen := l.currentGeneration()
	if items, ok := l.lookup(ctx); ok {
		if l.metrics != nil {
			l.metrics.CacheHit(l.cacheType)
		}
		if l.logger != nil {
			l.logger.WithFields(logrus.Fields{"key": l.key, "count": len(items)}).Debug("cache: listing hit")
		}
		return items, true, nil
	}
	if l.metrics != nil {
		l.metrics.CacheMiss(l.cacheType)
	}

	// Concurrent misses of one generation share one store read and one cache write.
	flight := l.key + "#" + strconv.FormatUint(gen, 10)
	ch := l.sf.DoChan(flight, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.loadTimeout)
		defer cancel()
		items, err := l.load(loadCtx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		l.populate(loadCtx, gen, items)
		return items, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, false, res.Err
	}
	items, ok := res.Val.([]T)
	if !ok {
		return nil, false, fmt.Errorf("unexpected type %T from listing loader", res.Val)
	}
	if l.logger != nil {
		l.logger.WithFields(logrus.Fields{"key": l.key, "count": len(items), "shared": res.Shared}).Debug("cache: listing miss, loaded from store")
	}
	return items, false, nil
}

// Invalidate drops the cached listing. Deleting an absent entry is not an error.
func (l *ListingCache[T]) Invalidate(ctx context.Context) error {
	l.mu.Lock()
	l.generation++
	l.mu.Unlock()

	if l.cache == nil {
		return nil
	}
	if err := l.cache.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", l.key, err)
	}
	if l.logger != nil {
		l.logger.WithField("key", l.key).Debug("cache: listing invalidated")
	}
	return nil
}

func (l *ListingCache[T]) currentGeneration() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

func (l *ListingCache[T]) lookup(ctx context.Context) ([]T, bool) {
	if l.cache == nil {
		return nil, false
	}
	b, ok, err := l.cache.Get(ctx, l.key)
	if err != nil {
		if l.logger != nil {
			l.logger.WithField("key", l.key).WithError(err).Warn("cache: read failed, serving listing from store")
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		if l.logger != nil {
			l.logger.WithField("key", l.key).WithError(err).Warn("cache: discarding undecodable listing")
		}
		return nil, false
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

// populate stores the snapshot unless an Invalidate ran after gen was read.
// Failures are logged and never reach the caller.
func (l *ListingCache[T]) populate(ctx context.Context, gen uint64, items []T) {
	if l.cache == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		if l.logger != nil {
			l.logger.WithField("key", l.key).Debug("cache: listing changed during load, not storing")
		}
		return
	}
	b, err := json.Marshal(items)
	if err != nil {
		if l.logger != nil {
			l.logger.WithField("key", l.key).WithError(err).Warn("cache: failed to encode listing")
		}
		return
	}
	if err := l.cache.Set(ctx, l.key, b, l.ttl); err != nil {
		if l.logger != nil {
			l.logger.WithField("key", l.key).WithError(err).Warn("cache: failed to store listing")
		}
		return
	}
	if l.logger != nil {
		l.logger.WithFields(logrus.Fields{"key": l.key, "ttl": l.ttl.String()}).Debug("cache: listing stored")
	}
}
