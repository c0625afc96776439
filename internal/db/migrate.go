package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements, re-run in order on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		id            INTEGER PRIMARY KEY CHECK(id = 1),
		times         TEXT NOT NULL,
		daily_count   INTEGER NOT NULL,
		sound_enabled INTEGER NOT NULL DEFAULT 1,
		volume        REAL NOT NULL DEFAULT 0.5,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS completions (
		date      TEXT NOT NULL,
		scheduled TEXT NOT NULL,
		actual    TEXT NOT NULL,
		PRIMARY KEY (date, scheduled)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		scheduled  TEXT NOT NULL,
		actual     TEXT NOT NULL,
		taps       INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Migrate applies the schema to the database.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
