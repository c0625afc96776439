package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkalonji/tasbih/internal/db"
)

// SQLiteAppStateRepo implements AppStateRepo over SQLite.
type SQLiteAppStateRepo struct {
	db db.DBTX
}

// NewSQLiteAppStateRepo creates a new SQLiteAppStateRepo.
func NewSQLiteAppStateRepo(dbtx db.DBTX) *SQLiteAppStateRepo {
	return &SQLiteAppStateRepo{db: dbtx}
}

func (r *SQLiteAppStateRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("app state %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading app state %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteAppStateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing app state %q: %w", key, err)
	}
	return nil
}
