package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over SQLite.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

func (r *SQLiteSessionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, scheduled, actual, taps FROM sessions
		 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		var scheduledStr, actualStr string
		if err := rows.Scan(&s.ID, &s.Date, &scheduledStr, &actualStr, &s.Taps); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if s.Scheduled, err = domain.ParseTimeOfDay(scheduledStr); err != nil {
			return nil, fmt.Errorf("parsing stored scheduled time: %w", err)
		}
		if s.Actual, err = domain.ParseTimeOfDay(actualStr); err != nil {
			return nil, fmt.Errorf("parsing stored actual time: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Add(ctx context.Context, s domain.Session, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, date, scheduled, actual, taps, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Date, s.Scheduled.String(), s.Actual.String(), s.Taps,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	// Keep only the newest entries; the history is a capped log.
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id NOT IN (
		   SELECT id FROM sessions ORDER BY created_at DESC LIMIT ?
		 )`, keep)
	if err != nil {
		return fmt.Errorf("pruning session history: %w", err)
	}
	return nil
}
