// Package store is the persistence layer: a single on-device SQLite
// database behind small per-area gateways. The database is local and
// single-writer; callers serialize mutations per record.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path and applies the
// pragmas the driver needs for a single-writer local store.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return db, nil
}

// Migrate creates all tables. Safe to run at every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			price         REAL NOT NULL DEFAULT 0,
			rating        INTEGER NOT NULL DEFAULT 0,
			image         TEXT,
			available_qty INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS cart (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER NOT NULL REFERENCES products(id),
			user_id    INTEGER NOT NULL REFERENCES users(id),
			wishlist   INTEGER NOT NULL DEFAULT 0,
			cart       INTEGER NOT NULL DEFAULT 0,
			quantity   INTEGER NOT NULL DEFAULT 0,
			UNIQUE (product_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS profile_records (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL REFERENCES users(id),
			blob     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_profile_records_owner
			ON profile_records (owner_id);
	`)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
// The modernc driver only exposes it through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
