// Package sqldb implements the persistence ports on database/sql.
//
// The same repositories run on PostgreSQL (pgx stdlib driver) and on SQLite
// (modernc.org/sqlite); queries are written with `?` placeholders and
// rebound for the active dialect.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open the relational store.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Timeout      time.Duration
}

// Connect opens the pool for cfg.Driver, verifies connectivity with a ping
// and returns the pool with its dialect. A default timeout is applied to the
// ping when none is provided.
func Connect(ctx context.Context, cfg Config) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, "", fmt.Errorf("sqldb: dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open(dialect.driverName(), dialect.dsn(cfg.DSN))
	if err != nil {
		return nil, "", fmt.Errorf("%s open: %w", dialect, err)
	}

	switch {
	case dialect == DialectSQLite:
		// SQLite serialises writers anyway, and an in-memory database only
		// lives as long as its single connection.
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("%s ping: %w", dialect, err)
	}

	return db, dialect, nil
}
