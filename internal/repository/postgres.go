package repository

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// openPostgres opens a PostgreSQL connection from a DATABASE_URL style
// connection string, normalizing it first.
func openPostgres(cfg domain.RepositoryConfig) (*sql.DB, error) {
	dsn, err := normalizeDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	return db, nil
}

// normalizeDatabaseURL rewrites the legacy postgresql:// scheme alias to
// the canonical postgres:// and percent-encodes the password component
// when it contains characters unsafe for URL syntax. User, host and path
// are left untouched.
func normalizeDatabaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty connection string")
	}
	if strings.HasPrefix(raw, "postgresql://") {
		raw = "postgres://" + strings.TrimPrefix(raw, "postgresql://")
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		// Keyword/value connection strings pass through untouched.
		return raw, nil
	}

	// The last @ separates credentials from the host, so passwords
	// containing @ are still handled.
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return raw, nil
	}
	userinfo, hostpart := rest[:at], rest[at+1:]

	user, pass, hasPass := strings.Cut(userinfo, ":")
	if !hasPass || pass == "" {
		return raw, nil
	}

	// Decode first so an already-encoded password is not double-encoded.
	if decoded, err := url.QueryUnescape(pass); err == nil {
		pass = decoded
	}
	return scheme + "://" + user + ":" + url.QueryEscape(pass) + "@" + hostpart, nil
}
