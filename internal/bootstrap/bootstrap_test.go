package bootstrap

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/configs"
)

func TestNewLogger_StampsServiceIdentity(t *testing.T) {
	logger := NewLogger(configs.LogConfig{Level: "debug", Format: "json"}, "users", "users-1")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithField("user_id", 3).Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "users", entry["service"])
	require.Equal(t, "users-1", entry["instance"])
	require.Equal(t, float64(3), entry["user_id"])
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	logger := NewLogger(configs.LogConfig{Level: "loud", Format: "text"}, "products", "p-1")
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, isText)
}

func TestServerConfig_MapsRateLimits(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "30000")
	cfg, err := configs.Load(configs.ServiceProducts)
	require.NoError(t, err)

	sc := ServerConfig(cfg)
	require.Equal(t, "products", sc.Service)
	require.Equal(t, "4000", sc.Port)
	require.Equal(t, 30*time.Second, sc.RateLimit.Window)
	require.Equal(t, 100, sc.RateLimit.MaxRequests)
	require.Equal(t, "10M", sc.BodyLimit)
}
