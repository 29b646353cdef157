// Package database opens the PostgreSQL connection pool shared by the jobs
// and the report server.
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/shopfixtures/internal/config"
	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig parses the connection string and applies the pool limits.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	return poolConfig, nil
}

// Connect opens a pool and verifies it with a ping. The caller closes it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logging.FromContext(ctx).Debug("connected to database",
		"name", databaseName(cfg.URL),
		"max_conns", poolConfig.MaxConns,
	)
	return pool, nil
}

// databaseName extracts the database name for logging without credentials.
func databaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
