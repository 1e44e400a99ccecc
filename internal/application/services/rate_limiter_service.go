package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
)

// RateLimiterService implements a keyed fixed-window limiter on top of a counter repository.
type RateLimiterService struct {
	repo      ports.RateLimitRepository
	limit     int
	window    time.Duration
	keyPrefix string
	logger    *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	// Apply defaults
	limit := 100
	w := time.Minute
	kp := "ratelimit"
	if cfg != nil {
		if cfg.MaxRequests > 0 {
			limit = cfg.MaxRequests
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, limit: limit, window: w, keyPrefix: kp, logger: logger}
}

func (s *RateLimiterService) Allow(ctx context.Context, key string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, s.keyPrefix+":"+key, s.window, ttl)
	reset := windowStart.Add(s.window)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key, "prefix": s.keyPrefix}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, s.limit, s.limit, reset, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key, "prefix": s.keyPrefix, "count": count, "limit": s.limit}).Debug("rate limiter window state")
	}
	if count > s.limit {
		return false, 0, s.limit, reset, nil
	}
	return true, s.limit - count, s.limit, reset, nil
}
