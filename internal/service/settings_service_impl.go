package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/repository"
)

type settingsService struct {
	settings    repository.SettingsRepo
	recitations RecitationService
	obs         UseCaseObserver
	logger      *slog.Logger
}

// NewSettingsService creates the schedule manager. recitations may be nil
// in contexts that never save (the save path re-evaluates through it).
func NewSettingsService(settings repository.SettingsRepo, recitations RecitationService, obs UseCaseObserver, logger *slog.Logger) SettingsService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{settings: settings, recitations: recitations, obs: obs, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (domain.Schedule, error) {
	schedule, err := s.settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("reading settings failed, using defaults", "error", err)
		}
		return domain.DefaultSchedule(), nil
	}
	return schedule, nil
}

func (s *settingsService) Save(ctx context.Context, schedule domain.Schedule) error {
	start := time.Now()
	err := s.save(ctx, schedule)
	observe(ctx, s.obs, "save_settings", start, err, map[string]any{
		"times":       domain.FormatTimes(schedule.Times),
		"daily_count": schedule.DailyCount,
	})
	return err
}

func (s *settingsService) save(ctx context.Context, schedule domain.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err // prior config untouched
	}
	if err := s.settings.Save(ctx, schedule); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}

	// Apply immediately instead of waiting for the next tick.
	if s.recitations != nil {
		if _, err := s.recitations.Evaluate(ctx); err != nil {
			s.logger.Warn("post-save evaluation failed", "error", err)
		}
	}
	return nil
}
