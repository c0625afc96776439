package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dkalonji/tasbih/internal/clock"
	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/notify"
	"github.com/dkalonji/tasbih/internal/repository"
	"github.com/dkalonji/tasbih/internal/scheduler"
	"github.com/google/uuid"
)

type recitationService struct {
	settings    repository.SettingsRepo
	completions repository.CompletionRepo
	sessions    repository.SessionRepo
	state       repository.AppStateRepo
	uow         db.UnitOfWork
	clk         clock.Clock
	gateway     notify.Gateway
	cues        Cues
	obs         UseCaseObserver
	logger      *slog.Logger

	// mu serializes every evaluation and tap: there is exactly one
	// mutator of day state, so no finer locking is needed.
	mu       sync.Mutex
	notified *scheduler.NotifiedSet
	lastSnap *scheduler.Snapshot
	tapCount int
}

// RecitationDeps bundles the collaborators of the recitation service.
type RecitationDeps struct {
	Settings    repository.SettingsRepo
	Completions repository.CompletionRepo
	Sessions    repository.SessionRepo
	State       repository.AppStateRepo
	UoW         db.UnitOfWork
	Clock       clock.Clock
	Gateway     notify.Gateway
	Cues        Cues
	Observer    UseCaseObserver
	Logger      *slog.Logger
}

// NewRecitationService creates the day-state coordinator.
func NewRecitationService(deps RecitationDeps) RecitationService {
	if deps.Cues == nil {
		deps.Cues = NoopCues{}
	}
	if deps.Observer == nil {
		deps.Observer = NoopUseCaseObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &recitationService{
		settings:    deps.Settings,
		completions: deps.Completions,
		sessions:    deps.Sessions,
		state:       deps.State,
		uow:         deps.UoW,
		clk:         deps.Clock,
		gateway:     deps.Gateway,
		cues:        deps.Cues,
		obs:         deps.Observer,
		logger:      deps.Logger,
		notified:    scheduler.NewNotifiedSet(),
	}
}

func (s *recitationService) Evaluate(ctx context.Context) (StatusReport, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.evaluateLocked(ctx)
	observe(ctx, s.obs, "evaluate", start, err, map[string]any{
		"current":   currentField(report),
		"completed": report.Snapshot.CompletedCount,
	})
	return report, err
}

func (s *recitationService) Tap(ctx context.Context) (TapResult, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.tapLocked(ctx)
	observe(ctx, s.obs, "tap", start, err, map[string]any{
		"count":     result.Count,
		"completed": result.Completed,
	})
	return result, err
}

func (s *recitationService) tapLocked(ctx context.Context) (TapResult, error) {
	report, err := s.evaluateLocked(ctx)
	if err != nil {
		return TapResult{}, err
	}
	if report.Snapshot.Current == nil {
		return TapResult{}, domain.ErrNoActiveSlot
	}
	slot := *report.Snapshot.Current
	schedule := s.loadScheduleLocked(ctx)

	s.tapCount++
	s.cues.Click(schedule)

	if s.tapCount < domain.TapsPerRecitation {
		return TapResult{
			Slot:      slot,
			Count:     s.tapCount,
			Remaining: domain.TapsPerRecitation - s.tapCount,
		}, nil
	}

	// Target reached: record the completion before resetting the count,
	// so a persistence failure keeps the tap progress intact.
	if err := s.recordCompletionLocked(ctx, slot); err != nil {
		s.tapCount--
		return TapResult{}, err
	}
	s.tapCount = 0
	s.cues.Complete(schedule)

	after, err := s.evaluateLocked(ctx)
	if err != nil {
		return TapResult{Slot: slot, Completed: true}, nil
	}
	result := TapResult{
		Slot:      slot,
		Completed: true,
		FinalSlot: after.Snapshot.AllDone(),
	}
	if after.Snapshot.Current != nil {
		result.Next = after.Snapshot.Current
	} else {
		result.Next = after.Snapshot.Next
	}
	return result, nil
}

func (s *recitationService) RecordCompletion(ctx context.Context, slot domain.TimeOfDay) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.evaluateLocked(ctx); err != nil {
		return err
	}
	err := s.recordCompletionLocked(ctx, slot)
	if err == nil {
		s.tapCount = 0
		_, _ = s.evaluateLocked(ctx)
	}
	observe(ctx, s.obs, "record_completion", start, err, map[string]any{"slot": slot.String()})
	return err
}

func (s *recitationService) Sweep(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.evaluateLocked(ctx)
	if err != nil {
		return err
	}
	reminder := scheduler.PlanSweep(report.Snapshot, s.notified)
	if reminder == nil {
		return nil
	}
	if err := s.gateway.ScheduleAt(reminder.ID, time.Now().Add(reminder.Delay), reminder.Title, reminder.Body); err != nil {
		s.logger.Warn("scheduling sweep reminder failed", "error", err)
	}
	return nil
}

func (s *recitationService) Rollover(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.state.Get(ctx, repository.KeyLastResetDate)
	if err == nil && last == date {
		return nil // already rolled over to this date
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("reading rollover date failed, rolling over anyway", "error", err)
	}
	return s.rolloverLocked(ctx, date)
}

// evaluateLocked is the single evaluation path: rollover check, status
// derivation, transition notifications, missed-reminder planning.
func (s *recitationService) evaluateLocked(ctx context.Context) (StatusReport, error) {
	now := s.clk.Now()
	s.ensureRolloverLocked(ctx, now.Date)

	schedule := s.loadScheduleLocked(ctx)
	ledger := s.loadLedgerLocked(ctx, now.Date)

	snap := scheduler.TakeSnapshot(schedule, ledger, now.Date, now.Time)

	for _, tr := range scheduler.Diff(s.lastSnap, snap) {
		if tr.Kind != scheduler.TimeReached {
			continue
		}
		notice := scheduler.TimeReachedNotice(tr.Slot)
		if err := s.gateway.SendImmediate(notice.Title, notice.Body); err != nil {
			s.logger.Warn("time-reached notification failed", "slot", tr.Slot.String(), "error", err)
		}
	}

	for _, r := range scheduler.PlanMissedReminders(snap, s.notified) {
		if err := s.gateway.ScheduleAt(r.ID, time.Now().Add(r.Delay), r.Title, r.Body); err != nil {
			// Not marked notified; the next evaluation retries.
			s.logger.Warn("scheduling missed reminder failed", "slot", r.Slot.String(), "error", err)
			continue
		}
		s.notified.Add(r.Slot)
	}

	// A change of current slot invalidates in-flight tap progress.
	if s.lastSnap != nil && !sameSlot(s.lastSnap.Current, snap.Current) {
		s.tapCount = 0
	}
	s.lastSnap = &snap

	return StatusReport{Snapshot: snap, TapCount: s.tapCount}, nil
}

func (s *recitationService) recordCompletionLocked(ctx context.Context, slot domain.TimeOfDay) error {
	now := s.clk.Now()
	ledger := s.loadLedgerLocked(ctx, now.Date)
	schedule := s.loadScheduleLocked(ctx)

	inSubset := false
	for _, t := range schedule.ActiveSubset() {
		if t == slot {
			inSubset = true
			break
		}
	}
	if !inSubset {
		return fmt.Errorf("%w: %s is not scheduled today", domain.ErrInvalidSlot, slot)
	}
	if ledger.Completed(slot) {
		return fmt.Errorf("%w: %s is already completed", domain.ErrInvalidSlot, slot)
	}

	record := domain.CompletionRecord{Date: now.Date, Scheduled: slot, Actual: now.Time}
	session := domain.Session{
		ID:        uuid.New().String(),
		Date:      now.Date,
		Scheduled: slot,
		Actual:    now.Time,
		Taps:      domain.TapsPerRecitation,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCompletionRepo(tx).Add(ctx, record); err != nil {
			return err
		}
		return repository.NewSQLiteSessionRepo(tx).Add(ctx, session, domain.SessionHistoryCap)
	})
	if err != nil {
		return fmt.Errorf("recording completion of %s: %w", slot, err)
	}

	// The slot is settled; its pending reminder is moot.
	if err := s.gateway.Cancel(notify.MissedID(slot.String())); err != nil {
		s.logger.Warn("cancelling reminder failed", "slot", slot.String(), "error", err)
	}
	// lastSnap stays: arrival notices are deduplicated by diffing against
	// it, and a completion never produces an Upcoming transition, so the
	// stale statuses cannot re-fire a notice for another slot.
	return nil
}

func (s *recitationService) ensureRolloverLocked(ctx context.Context, date string) {
	last, err := s.state.Get(ctx, repository.KeyLastResetDate)
	if err == nil && last == date {
		return
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("reading rollover date failed", "error", err)
	}
	if rErr := s.rolloverLocked(ctx, date); rErr != nil {
		s.logger.Warn("rollover failed", "date", date, "error", rErr)
	}
}

func (s *recitationService) rolloverLocked(ctx context.Context, date string) error {
	// Persist before touching in-memory state: a crash between the two
	// loses at most this transition and re-evaluation recovers it.
	if err := s.state.Set(ctx, repository.KeyLastResetDate, date); err != nil {
		return fmt.Errorf("persisting rollover date: %w", err)
	}
	if err := s.completions.ClearOtherThan(ctx, date); err != nil {
		return fmt.Errorf("clearing previous day's ledger: %w", err)
	}

	s.notified.Clear()
	s.tapCount = 0
	s.lastSnap = nil

	pending, err := s.gateway.ListScheduled()
	if err != nil {
		s.logger.Warn("listing pending notifications failed", "error", err)
		return nil
	}
	for _, p := range pending {
		if !strings.HasPrefix(p.ID, "missed-") {
			continue
		}
		if err := s.gateway.Cancel(p.ID); err != nil {
			s.logger.Warn("cancelling stale reminder failed", "id", p.ID, "error", err)
		}
	}
	s.logger.Info("day rollover", "date", date)
	return nil
}

// loadScheduleLocked reads the schedule, degrading to the default on any
// read problem. Unparseable persisted state is never fatal.
func (s *recitationService) loadScheduleLocked(ctx context.Context) domain.Schedule {
	schedule, err := s.settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("reading settings failed, using defaults", "error", err)
		}
		return domain.DefaultSchedule()
	}
	if vErr := schedule.Validate(); vErr != nil {
		s.logger.Warn("stored settings invalid, using defaults", "error", vErr)
		return domain.DefaultSchedule()
	}
	return schedule
}

func (s *recitationService) loadLedgerLocked(ctx context.Context, date string) domain.Ledger {
	ledger, err := s.completions.ListByDate(ctx, date)
	if err != nil {
		s.logger.Warn("reading ledger failed, treating day as empty", "error", err)
		return domain.NewLedger(date)
	}
	return ledger
}

func sameSlot(a, b *domain.TimeOfDay) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func currentField(report StatusReport) string {
	if report.Snapshot.Current == nil {
		return ""
	}
	return report.Snapshot.Current.String()
}
