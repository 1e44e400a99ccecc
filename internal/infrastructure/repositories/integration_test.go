//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cloudnative-labs/microservices/configs"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/db"
)

const (
	pgUser     = "clouduser"
	pgPassword = "cloudpass123"
)

// setupPostgres starts one Postgres container hosting both service databases.
func setupPostgres(t *testing.T) (host, port string, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "usersdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}
	host, err = container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get Postgres host: %v", err)
	}
	mapped, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to get Postgres port: %v", err)
	}
	return host, mapped.Port(), func() { _ = container.Terminate(ctx) }
}

func openDatabase(t *testing.T, host, port, name, migrations string) *db.Database {
	t.Helper()
	cfg := &configs.DatabaseConfig{
		DSN:          fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, pgUser, pgPassword, name),
		MaxOpenConns: 5,
	}
	database, err := db.NewDatabaseWithConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(migrations))
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func setupDatabases(t *testing.T) (users, products *db.Database) {
	t.Helper()
	host, port, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	users = openDatabase(t, host, port, "usersdb", "../../../migrations/users")
	_, err := users.DB.Exec(`CREATE DATABASE productsdb`)
	require.NoError(t, err)
	products = openDatabase(t, host, port, "productsdb", "../../../migrations/products")
	return users, products
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		client.Close()
		_ = container.Terminate(ctx)
	})
	return client
}
