package service

import (
	"context"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/scheduler"
)

// StatusReport is the outcome of one evaluation: the derived day state
// plus the in-flight tap count for the current slot.
type StatusReport struct {
	Snapshot scheduler.Snapshot
	TapCount int
}

// TapResult reports the effect of one tap.
type TapResult struct {
	Slot      domain.TimeOfDay
	Count     int // taps so far on the slot; 0 right after completion
	Remaining int
	Completed bool
	// FinalSlot is set when the completed slot was the last of the day.
	FinalSlot bool
	// Next is the slot to act on afterwards: another pending slot if one
	// exists, else the next upcoming time. Nil when the day is done.
	Next *domain.TimeOfDay
}

// RecitationService is the single source of truth for what the user
// should be doing right now. All operations are serialized internally.
type RecitationService interface {
	// Evaluate performs rollover if the date changed, derives slot
	// statuses, requests notifications for new transitions, and returns
	// the current state.
	Evaluate(ctx context.Context) (StatusReport, error)

	// Tap counts one tap toward the current slot. Returns
	// domain.ErrNoActiveSlot when nothing is pending.
	Tap(ctx context.Context) (TapResult, error)

	// RecordCompletion marks a slot completed directly. Returns
	// domain.ErrInvalidSlot for slots outside today's active subset or
	// already completed.
	RecordCompletion(ctx context.Context, slot domain.TimeOfDay) error

	// Sweep runs the slow still-missed reminder pass.
	Sweep(ctx context.Context) error

	// Rollover resets the day state for the given date. Idempotent.
	Rollover(ctx context.Context, date string) error
}

// SettingsService manages the user's schedule.
type SettingsService interface {
	Get(ctx context.Context) (domain.Schedule, error)
	// Save validates, persists, and immediately re-evaluates so the new
	// schedule takes effect without waiting for the next tick. On
	// validation failure the prior schedule stays in effect.
	Save(ctx context.Context, s domain.Schedule) error
}

// HistoryService reads the capped session log.
type HistoryService interface {
	Recent(ctx context.Context) ([]domain.Session, error)
}

// IntroService tracks the first-launch sentinels.
type IntroService interface {
	// MarkLaunched records the first launch; returns true the first time.
	MarkLaunched(ctx context.Context) (bool, error)
	// ShouldShowIntro reports whether the intro was never shown, and
	// marks it shown.
	ShouldShowIntro(ctx context.Context) (bool, error)
}
