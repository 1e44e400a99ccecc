package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Service names accepted by Load.
const (
	ServiceUsers    = "users"
	ServiceProducts = "products"
)

type Config struct {
	Service   string
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	InstanceID     string
	Environment    string
	AllowedOrigins []string
	AllowedMethods []string
	BodyLimit      string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

// CacheConfig selects the cache adapter. Backend is "redis" or "memory".
type CacheConfig struct {
	Backend    string
	KeyPrefix  string
	ListingTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Enabled      bool
	MaxRequests  int
	Window       time.Duration
	StrictMax    int
	StrictWindow time.Duration
	KeyPrefix    string
}

// Load reads configuration for the named service. Environment variables win over
// values in an optional .env file; unset variables fall back to per-service defaults.
func Load(service string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var defaultPort, defaultDB string
	switch service {
	case ServiceUsers:
		defaultPort, defaultDB = "3000", "usersdb"
	case ServiceProducts:
		defaultPort, defaultDB = "3001", "productsdb"
	default:
		return nil, fmt.Errorf("unknown service %q", service)
	}

	cfg := &Config{
		Service: service,
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("PORT", defaultPort),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			InstanceID:     getEnv("INSTANCE_ID", "unknown"),
			Environment:    getEnv("APP_ENV", "production"),
			AllowedOrigins: getListEnv("CORS_ORIGIN", []string{"http://localhost:3000"}),
			AllowedMethods: getListEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE"}),
			BodyLimit:      getEnv("BODY_LIMIT", "10M"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "clouduser"),
			Password:        getEnv("DB_PASSWORD", "cloudpass123"),
			DBName:          getEnv("DB_NAME", defaultDB),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations/"+service),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(getEnv("CACHE_BACKEND", "redis")),
			KeyPrefix:  getEnv("CACHE_KEY_PREFIX", ""),
			ListingTTL: getDurationEnv("CACHE_LISTING_TTL", 60*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled:      getBoolEnv("RATE_LIMIT_ENABLED", true),
			MaxRequests:  getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:       getMillisEnv("RATE_LIMIT_WINDOW_MS", time.Minute),
			StrictMax:    getIntEnv("RATE_LIMIT_STRICT_MAX_REQUESTS", 5),
			StrictWindow: getMillisEnv("RATE_LIMIT_STRICT_WINDOW_MS", 15*time.Minute),
			KeyPrefix:    getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:"+service),
		},
	}

	if cfg.Cache.Backend != "redis" && cfg.Cache.Backend != "memory" {
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: want redis or memory", cfg.Cache.Backend)
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMillisEnv accepts either a bare number of milliseconds or a Go duration string.
func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
