package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_UsersDefaults(t *testing.T) {
	cfg, err := Load(ServiceUsers)
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, "usersdb", cfg.Database.DBName)
	require.Equal(t, 60*time.Second, cfg.Cache.ListingTTL)
	require.Equal(t, 100, cfg.RateLimit.MaxRequests)
	require.Equal(t, time.Minute, cfg.RateLimit.Window)
	require.Equal(t, 15*time.Minute, cfg.RateLimit.StrictWindow)
	require.Equal(t, "./migrations/users", cfg.Database.MigrationsPath)
	require.Contains(t, cfg.Database.DSN, "dbname=usersdb")
}

func TestLoad_ProductsDefaults(t *testing.T) {
	cfg, err := Load(ServiceProducts)
	require.NoError(t, err)
	require.Equal(t, "3001", cfg.Server.Port)
	require.Equal(t, "productsdb", cfg.Database.DBName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "30000")
	t.Setenv("CACHE_BACKEND", "Memory")
	t.Setenv("CACHE_LISTING_TTL", "5s")

	cfg, err := Load(ServiceUsers)
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, 5*time.Second, cfg.Cache.ListingTTL)
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load("orders")
	require.Error(t, err)

	t.Setenv("CACHE_BACKEND", "memcached")
	_, err = Load(ServiceUsers)
	require.Error(t, err)
}
