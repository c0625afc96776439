package service

import (
	"context"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/repository"
)

type historyService struct {
	sessions repository.SessionRepo
}

// NewHistoryService creates the session history reader.
func NewHistoryService(sessions repository.SessionRepo) HistoryService {
	return &historyService{sessions: sessions}
}

func (s *historyService) Recent(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.ListRecent(ctx, domain.SessionHistoryCap)
}
