package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over SQLite. The schedule
// lives in a singleton row; times are stored as a JSON array of "HH:MM"
// strings.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(dbtx db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: dbtx}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (domain.Schedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT times, daily_count, sound_enabled, volume FROM settings WHERE id = 1`)

	var timesJSON string
	var s domain.Schedule
	var soundEnabled int
	err := row.Scan(&timesJSON, &s.DailyCount, &soundEnabled, &s.Volume)
	if err == sql.ErrNoRows {
		return domain.Schedule{}, fmt.Errorf("settings: %w", ErrNotFound)
	}
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("scanning settings: %w", err)
	}
	s.SoundEnabled = soundEnabled != 0

	var strs []string
	if err := json.Unmarshal([]byte(timesJSON), &strs); err != nil {
		return domain.Schedule{}, fmt.Errorf("decoding stored times %q: %w", timesJSON, err)
	}
	s.Times, err = domain.ParseTimes(strs)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("parsing stored times: %w", err)
	}
	return s, nil
}

func (r *SQLiteSettingsRepo) Save(ctx context.Context, s domain.Schedule) error {
	timesJSON, err := json.Marshal(domain.FormatTimes(s.Times))
	if err != nil {
		return fmt.Errorf("encoding times: %w", err)
	}

	soundEnabled := 0
	if s.SoundEnabled {
		soundEnabled = 1
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO settings (id, times, daily_count, sound_enabled, volume, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   times = excluded.times,
		   daily_count = excluded.daily_count,
		   sound_enabled = excluded.sound_enabled,
		   volume = excluded.volume,
		   updated_at = excluded.updated_at`,
		string(timesJSON), s.DailyCount, soundEnabled, s.Volume,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
