// Package config loads the lead list server's settings from environment
// variables, applies defaults and validates everything at startup so a
// misconfigured process fails before it serves a request.
package config

import (
	"strconv"
	"time"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Places   PlacesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including waiting for
	// running imports to finish (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// StorageConfig selects where the lead document lives.
type StorageConfig struct {
	// Backend is one of file, memory, postgres, redis (default: file)
	Backend string `env:"STORAGE_BACKEND" default:"file"`

	// Dir is the directory for the file backend (default: ./data)
	Dir string `env:"STORAGE_DIR" default:"./data"`

	// Key names the lead document in every backend (default: salesListData)
	Key string `env:"STORAGE_KEY" default:"salesListData"`

	// UsageKey names the places usage counter document (default: apiUsageData)
	UsageKey string `env:"STORAGE_USAGE_KEY" default:"apiUsageData"`

	// DatabaseURL is the PostgreSQL connection string, required for the
	// postgres backend. DB_URL is accepted for compatibility.
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// RedisURL is required for the redis backend, e.g. redis://localhost:6379/0
	RedisURL string `env:"REDIS_URL"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum accepted upload in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the number of imports that may run at once (default: 3)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"3"`

	// MaxWaitTime is how long a request waits for an import slot (default: 10s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"10s"`

	// Timeout bounds one import batch (default: 2m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"2m"`

	// SummaryLimit is how many duplicates and errors the text summary lists (default: 5)
	SummaryLimit int `env:"IMPORT_SUMMARY_LIMIT" default:"5"`
}

// RateLimitConfig holds per-IP request rate limits.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// Burst is the number of requests allowed above the sustained rate (default: 30)
	Burst int `env:"RATE_LIMIT_BURST" default:"30"`

	// ImportPerMinute is the stricter rate for import endpoints (default: 10)
	ImportPerMinute int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// forwarding headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins is a comma-separated CORS allow list. Empty disables CORS.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// RequireAPIKey gates /api behind the X-API-Key header.
	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// PlacesConfig holds places-search settings.
type PlacesConfig struct {
	// APIKey is the provider key. Searches are refused without one.
	APIKey string `env:"PLACES_API_KEY" envAlt:"GOOGLE_PLACES_API_KEY"`

	// MonthlyCap refuses searches after this many in a calendar month. 0 = no cap.
	MonthlyCap int `env:"PLACES_MONTHLY_CAP" default:"0"`

	// SearchesPerSecond paces provider calls (default: 1)
	SearchesPerSecond float64 `env:"PLACES_SEARCHES_PER_SECOND" default:"1"`

	// IndustryMapFile is an optional YAML file extending the tag→industry table.
	IndustryMapFile string `env:"PLACES_INDUSTRY_MAP"`

	// Region is the default phone region for admitted places (default: JP)
	Region string `env:"PLACES_REGION" default:"JP"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
