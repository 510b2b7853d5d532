package sqldb

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id              BIGSERIAL PRIMARY KEY,
		username        TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		hashed_password TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_key ON accounts (username)`,
	`CREATE TABLE IF NOT EXISTS memos (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		title   TEXT,
		content TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS memos_user_id_idx ON memos (user_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		username        TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		hashed_password TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_key ON accounts (username)`,
	`CREATE TABLE IF NOT EXISTS memos (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		title   TEXT,
		content TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS memos_user_id_idx ON memos (user_id)`,
}

// Schema returns the idempotent DDL statements for the dialect.
func (d Dialect) Schema() []string {
	if d == DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// EnsureSchema creates the tables and indexes if they are missing. All
// statements run in one transaction.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		for _, stmt := range dialect.Schema() {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}
