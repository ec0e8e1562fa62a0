// Package db provides the Postgres storage layer. Vectors are stored in a
// pgvector column and compared with cosine distance.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rghoshroy/gent-disagreement-go/internal/metrics"
)

// Config holds Postgres connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// DSN builds a postgres connection URL from the config.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, url.QueryEscape(c.Password), c.Host, c.Port, c.Database)
}

// Client wraps a pooled database handle.
type Client struct {
	db      *sql.DB
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewClient(collector *metrics.Collector, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{metrics: collector, logger: logger}
}

// Connect opens the pool and verifies connectivity with a ping.
func (c *Client) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database %s@%s:%s/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Database, err)
	}
	c.db = db
	c.logger.Debug("connected to database", "host", cfg.Host, "database", cfg.Database)
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying handle for the storage operations.
func (c *Client) DB() *sql.DB {
	return c.db
}
