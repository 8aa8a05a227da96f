// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// Load builds a Config from environment variables on top of the defaults.
// A set DATABASE_URL selects the postgres driver; otherwise the service
// runs on a local sqlite file.
func Load() (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	cfg.Server.Host = getEnvString("HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvInt("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvInt("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Repository.Driver = "postgres"
		cfg.Repository.DatabaseURL = url
	}
	cfg.Repository.SQLitePath = getEnvString("SQLITE_PATH", cfg.Repository.SQLitePath)
	cfg.Repository.PoolSize = getEnvInt("DB_POOL_SIZE", cfg.Repository.PoolSize)
	cfg.Repository.PoolOverflow = getEnvInt("DB_POOL_OVERFLOW", cfg.Repository.PoolOverflow)
	cfg.Repository.AcquireTimeout = getEnvDuration("DB_POOL_TIMEOUT", cfg.Repository.AcquireTimeout)
	cfg.Repository.ConnMaxLifetime = getEnvDuration("DB_POOL_RECYCLE", cfg.Repository.ConnMaxLifetime)

	cfg.Logging.Level = getEnvString("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvString("LOG_FORMAT", cfg.Logging.Format)

	cfg.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.RPS = getEnvInt("RATE_LIMIT_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	switch cfg.Repository.Driver {
	case "postgres":
		if cfg.Repository.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case "sqlite":
		if cfg.Repository.SQLitePath == "" {
			return fmt.Errorf("sqlite database path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Repository.Driver)
	}
	if cfg.Repository.PoolSize <= 0 || cfg.Repository.PoolOverflow < 0 {
		return fmt.Errorf("pool size must be positive and overflow non-negative")
	}
	if cfg.Repository.AcquireTimeout <= 0 {
		return fmt.Errorf("pool checkout timeout must be positive")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			cfg.Logging.Level, strings.Join(validLevels, ", "))
	}
	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(cfg.Logging.Format)) {
		return fmt.Errorf("invalid log format %q, must be one of: %s",
			cfg.Logging.Format, strings.Join(validFormats, ", "))
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Bare integers are read as seconds, matching the pool knobs of
		// the original deployment environment.
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
