package repository

import (
	"context"
	"errors"

	"github.com/dkalonji/tasbih/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist. Callers
// treat it as "use the default", never as a fatal condition.
var ErrNotFound = errors.New("not found")

// SettingsRepo stores the single user schedule.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.Schedule, error)
	Save(ctx context.Context, s domain.Schedule) error
}

// CompletionRepo stores per-day completion records.
type CompletionRepo interface {
	ListByDate(ctx context.Context, date string) (domain.Ledger, error)
	Add(ctx context.Context, rec domain.CompletionRecord) error
	// ClearOtherThan removes records from any date except keepDate.
	// Rollover uses it so stale days never accumulate.
	ClearOtherThan(ctx context.Context, keepDate string) error
}

// SessionRepo stores the capped recitation history.
type SessionRepo interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Session, error)
	// Add inserts a session and prunes the table beyond keep entries.
	Add(ctx context.Context, s domain.Session, keep int) error
}

// AppStateRepo is a small key/value store for non-schedule state:
// the rollover date and the first-launch sentinels.
type AppStateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Keys used with AppStateRepo.
const (
	KeyLastResetDate = "last_reset_date"
	KeyHasLaunched   = "has_launched"
	KeyHasSeenIntro  = "has_seen_intro"
)
