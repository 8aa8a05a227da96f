package domain

import "time"

// Config holds the complete service configuration.
type Config struct {
	Server     ServerConfig
	Repository RepositoryConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// RepositoryConfig holds database driver and pool settings.
type RepositoryConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string

	// DatabaseURL is the postgres connection URL. Legacy postgresql://
	// scheme aliases and unescaped password characters are normalized
	// before use.
	DatabaseURL string

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string

	// Pool sizing: persistent connections plus allowed overflow.
	PoolSize     int
	PoolOverflow int

	// AcquireTimeout bounds connection checkout per operation.
	AcquireTimeout time.Duration

	// ConnMaxLifetime forces recycling of long-lived connections.
	ConnMaxLifetime time.Duration
}

// MaxOpenConns is the hard pool cap: persistent plus overflow connections.
func (c RepositoryConfig) MaxOpenConns() int {
	return c.PoolSize + c.PoolOverflow
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	Enabled bool
	RPS     int
	Burst   int
}

// DefaultConfig returns a local development configuration backed by sqlite.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Repository: RepositoryConfig{
			Driver:          "sqlite",
			SQLitePath:      "./transactions.db",
			PoolSize:        5,
			PoolOverflow:    10,
			AcquireTimeout:  30 * time.Second,
			ConnMaxLifetime: 1800 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     100,
			Burst:   50,
		},
	}
}
