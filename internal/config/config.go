// Package config loads server settings from environment variables.
// Defaults are applied for unset values and everything is validated
// on startup so a bad setting fails fast.
package config

import (
	"strconv"
	"time"
)

// Source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Database DatabaseConfig
	Table    TableConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig selects where the grid's rows come from.
type SourceConfig struct {
	// Kind is "csv" or "postgres" (default: csv)
	Kind string `env:"SOURCE_KIND" default:"csv"`

	// CSVPath is the file read when Kind is csv
	CSVPath string `env:"SOURCE_CSV_PATH"`

	// HasHeader treats the first CSV record as column names (default: true)
	HasHeader bool `env:"SOURCE_HAS_HEADER" default:"true"`

	// Table is the relation read when Kind is postgres, optionally schema-qualified
	Table string `env:"SOURCE_TABLE"`

	// Columns limits and orders the selected columns; empty selects all
	Columns []string `env:"SOURCE_COLUMNS"`
}

// DatabaseConfig holds database connection settings.
// Only used when the source kind is postgres.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// TableConfig holds the initial grid settings.
type TableConfig struct {
	// PageSize is the number of rows per page (default: 5)
	PageSize int `env:"TABLE_PAGE_SIZE" default:"5"`

	// FilterColumns are the column indices the text filter searches
	FilterColumns []int `env:"TABLE_FILTER_COLUMNS"`

	// Selectable enables row checkboxes and bulk delete (default: true)
	Selectable bool `env:"TABLE_SELECTABLE" default:"true"`

	TrueSentinel  string `env:"TABLE_TRUE_SENTINEL" default:"true"`
	FalseSentinel string `env:"TABLE_FALSE_SENTINEL" default:"false"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per client IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey enables X-API-Key authentication on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
