package main

import (
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/configs"
	"github.com/cloudnative-labs/microservices/internal/application/services"
	"github.com/cloudnative-labs/microservices/internal/bootstrap"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/health"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/httpserver"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/memcache"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/redis"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/repositories"
)

func main() {
	cfg, err := configs.Load(configs.ServiceUsers)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := bootstrap.NewLogger(cfg.Log, cfg.Service, cfg.Server.InstanceID)
	logger.Info("starting users service")

	database, err := bootstrap.OpenDatabase(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare database")
	}
	defer database.Close()

	m := metrics.New("user")
	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database)}
	deps := httpserver.ServerDeps{Metrics: m}

	var cache ports.Cache
	switch cfg.Cache.Backend {
	case "redis":
		var redisClient *goredis.Client
		redisClient, err = redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		defer redisClient.Close()
		logger.WithFields(logrus.Fields{"host": cfg.Redis.Host, "port": cfg.Redis.Port}).Info("connected to Redis")

		cache = redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix)
		hcSlice = append(hcSlice, health.NewRedisHealthChecker(redisClient))

		if cfg.RateLimit.Enabled {
			rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)
			deps.RateLimiter = services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
				MaxRequests: cfg.RateLimit.MaxRequests,
				Window:      cfg.RateLimit.Window,
				KeyPrefix:   cfg.RateLimit.KeyPrefix + ":global",
			}, logger)
			deps.StrictRateLimiter = services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
				MaxRequests: cfg.RateLimit.StrictMax,
				Window:      cfg.RateLimit.StrictWindow,
				KeyPrefix:   cfg.RateLimit.KeyPrefix + ":strict",
			}, logger)
		}
	case "memory":
		cache = memcache.New(cfg.Cache.ListingTTL)
		logger.Warn("using in-process cache; listings are not shared between instances")
	}

	userRepo := repositories.NewUserRepository(database, logger)
	deps.UserService = services.NewUserService(userRepo, cache, cfg.Cache.ListingTTL, logger, m)
	deps.HealthCheckers = hcSlice

	server := httpserver.NewServer(bootstrap.ServerConfig(cfg), logger, deps)
	bootstrap.Run(server, logger, bootstrap.PoolReporter(database, m, nil))
}
