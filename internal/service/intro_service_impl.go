package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkalonji/tasbih/internal/repository"
)

type introService struct {
	state repository.AppStateRepo
}

// NewIntroService creates the first-launch tracker.
func NewIntroService(state repository.AppStateRepo) IntroService {
	return &introService{state: state}
}

func (s *introService) MarkLaunched(ctx context.Context) (bool, error) {
	return s.checkAndSet(ctx, repository.KeyHasLaunched)
}

func (s *introService) ShouldShowIntro(ctx context.Context) (bool, error) {
	return s.checkAndSet(ctx, repository.KeyHasSeenIntro)
}

func (s *introService) checkAndSet(ctx context.Context, key string) (bool, error) {
	_, err := s.state.Get(ctx, key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := s.state.Set(ctx, key, "true"); err != nil {
		return false, fmt.Errorf("writing %s: %w", key, err)
	}
	return true, nil
}
