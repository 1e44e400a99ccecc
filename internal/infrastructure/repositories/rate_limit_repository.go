package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimitRedisRepository implements rate limiting counter storage with Redis.
type RateLimitRedisRepository struct {
	r redis.Cmdable
}

func NewRateLimitRedisRepository(r redis.Cmdable) *RateLimitRedisRepository {
	return &RateLimitRedisRepository{r: r}
}

// IncrementWindow increments the counter of key for the fixed window containing now.
// INCR and EXPIRE run in one MULTI so a counter never outlives its ttl.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, key string, window time.Duration, ttl time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)
	windowKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, fmt.Errorf("failed to increment rate limit window: %w", err)
	}
	return int(incr.Val()), windowStart, nil
}
