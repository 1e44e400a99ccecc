package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
	infraDB "github.com/cloudnative-labs/microservices/internal/infrastructure/db"
)

// dbHealthChecker runs a round trip on the pool.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.Ping(ctx) }

// redisHealthChecker issues PING.
type redisHealthChecker struct{ client redis.UniversalClient }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.UniversalClient) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// CheckerFunc adapts a named probe function, e.g. for tests or ad-hoc dependencies.
type CheckerFunc struct {
	DependencyName string
	Probe          func(ctx context.Context) error
}

func (f CheckerFunc) Name() string                    { return f.DependencyName }
func (f CheckerFunc) Check(ctx context.Context) error { return f.Probe(ctx) }
