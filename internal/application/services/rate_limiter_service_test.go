package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/internal/application/services"
	"github.com/cloudnative-labs/microservices/test/mocks"
)

func TestRateLimiterService_DeniesAfterBudget(t *testing.T) {
	counts := map[string]int{}
	var gotTTL time.Duration
	repo := &mocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(_ context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
			counts[key]++
			gotTTL = ttl
			return counts[key], time.Now().Truncate(window), nil
		},
	}
	svc := services.NewRateLimiterService(repo, &services.RateLimiterConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:users"}, quietLogger())
	ctx := context.Background()

	allowed, remaining, limit, _, err := svc.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 1, remaining)
	require.Equal(t, 2, limit)

	allowed, remaining, _, _, _ = svc.Allow(ctx, "10.0.0.1")
	require.True(t, allowed)
	require.Equal(t, 0, remaining)

	allowed, remaining, _, reset, err := svc.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Equal(t, 0, remaining)
	require.True(t, reset.After(time.Now().Add(-time.Second)))

	allowed, _, _, _, _ = svc.Allow(ctx, "10.0.0.2")
	require.True(t, allowed, "budgets are per key")
	require.Equal(t, 3, counts["rl:users:10.0.0.1"])
	require.Equal(t, 2*time.Minute, gotTTL)
}

func TestRateLimiterService_FailsOpen(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(context.Context, string, time.Duration, time.Duration) (int, time.Time, error) {
			return 0, time.Now(), errors.New("redis down")
		},
	}
	svc := services.NewRateLimiterService(repo, nil, quietLogger())

	allowed, _, limit, _, err := svc.Allow(context.Background(), "10.0.0.1")
	require.Error(t, err)
	require.True(t, allowed)
	require.Equal(t, 100, limit)
}
