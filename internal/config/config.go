// Package config provides centralized configuration management for the three
// fixture jobs and the report server. It loads configuration from environment
// variables with sensible defaults and validates all settings on startup to
// fail fast on misconfiguration.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database  DatabaseConfig
	Data      DataConfig
	Generator GeneratorConfig
	Report    ReportConfig
	Server    ServerConfig
	Logging   LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	// Only jobs that touch the store require it (see RequireDatabase).
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 2)
	MaxConns int `env:"DB_MAX_CONNS" default:"2"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// ConnectTimeout bounds the initial connect and ping (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// DataConfig holds the location of the generated CSV files.
type DataConfig struct {
	// Dir is where the generator writes and the loader reads (default: data)
	Dir string `env:"DATA_DIR" default:"data"`
}

// GeneratorConfig holds fixture volume and seed settings.
type GeneratorConfig struct {
	// Seed drives the pseudo-random source (default: 42)
	Seed uint64 `env:"GEN_SEED" default:"42"`

	Customers  int `env:"GEN_CUSTOMERS" default:"100"`
	Products   int `env:"GEN_PRODUCTS" default:"100"`
	Orders     int `env:"GEN_ORDERS" default:"100"`
	OrderItems int `env:"GEN_ORDER_ITEMS" default:"130"`

	// Now pins the reference time in RFC 3339 form. Empty means wall clock.
	Now string `env:"GEN_NOW"`
}

// ReportConfig holds reporter settings.
type ReportConfig struct {
	// QueryFile is the SQL resource executed by the reporter
	QueryFile string `env:"REPORT_QUERY_FILE" default:"queries/report.sql"`

	// Timeout bounds a single report query (default: 30s)
	Timeout time.Duration `env:"REPORT_TIMEOUT" default:"30s"`
}

// ServerConfig holds HTTP server settings for the report server.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// APIKeys is a comma-separated list of accepted X-API-Key values.
	// Empty disables authentication.
	APIKeys string `env:"SERVER_API_KEYS"`

	// TrustedProxies is a comma-separated list of CIDRs whose X-Real-IP and
	// X-Forwarded-For headers are honored.
	TrustedProxies string `env:"SERVER_TRUSTED_PROXIES" default:"127.0.0.1/32,::1/128"`

	// RateLimit is the number of requests allowed per client IP per minute (default: 100)
	RateLimit int `env:"SERVER_RATE_LIMIT" default:"100"`
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

// KeyList returns the configured API keys with blanks removed.
func (c *ServerConfig) KeyList() []string {
	return splitList(c.APIKeys)
}

// ProxyList returns the configured trusted proxy CIDRs with blanks removed.
func (c *ServerConfig) ProxyList() []string {
	return splitList(c.TrustedProxies)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ReferenceTime returns the generator's notion of "now".
// Falls back to the wall clock when Now is unset.
func (c *GeneratorConfig) ReferenceTime() (time.Time, error) {
	if c.Now == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, c.Now)
}
