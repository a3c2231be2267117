// Package db provides the Postgres connection and schema migration for guild
// settings. Timer state is deliberately never persisted; the only table is
// per-guild configuration.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'
)

// Connect opens a Postgres connection for the given DSN.
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB_DSN")
	}
	return sql.Open("pgx", dsn)
}

// Migrate applies idempotent embedded schema statements. It is the fallback
// for deployments without the versioned migration files on disk; RunMigrations
// is the primary path.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS guild_settings (
			guild_id BIGINT PRIMARY KEY,
			language TEXT NOT NULL DEFAULT 'english',
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	}
	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("postgres migrate step %d failed: %w", i, err)
		}
	}
	return nil
}
