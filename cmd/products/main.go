package main

import (
	"context"
	"log"

	"github.com/cloudnative-labs/microservices/configs"
	"github.com/cloudnative-labs/microservices/internal/application/services"
	"github.com/cloudnative-labs/microservices/internal/bootstrap"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/health"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/httpserver"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/repositories"
)

func main() {
	cfg, err := configs.Load(configs.ServiceProducts)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := bootstrap.NewLogger(cfg.Log, cfg.Service, cfg.Server.InstanceID)
	logger.Info("starting products service")

	database, err := bootstrap.OpenDatabase(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare database")
	}
	defer database.Close()

	m := metrics.New("product")
	productRepo := repositories.NewProductRepository(database, logger)
	productService := services.NewProductService(productRepo, logger, m)

	deps := httpserver.ServerDeps{
		ProductService: productService,
		HealthCheckers: []ports.HealthChecker{health.NewDBHealthChecker(database)},
		Metrics:        m,
	}
	server := httpserver.NewServer(bootstrap.ServerConfig(cfg), logger, deps)

	inventory := func(ctx context.Context) {
		inv, err := productService.Inventory(ctx)
		if err != nil {
			logger.WithError(err).Warn("failed to refresh inventory metrics")
			return
		}
		m.SetInventory(inv.Count, inv.TotalStock)
	}
	bootstrap.Run(server, logger, bootstrap.PoolReporter(database, m, inventory))
}
