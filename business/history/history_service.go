package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
)

type HistoryRepository interface {
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.WatchHistory, error)
	Upsert(ctx context.Context, entry *domain.WatchHistory) error
}

type CaseRepository interface {
	FindByID(ctx context.Context, id string) (domain.Case, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Case, error)
}

const listLimit = 50

var (
	ErrInvalidUser   = errors.New("invalid user id")
	ErrInvalidCaseID = errors.New("invalid case id")
)

type historyService struct {
	historyRepo HistoryRepository
	caseRepo    CaseRepository
	now         func() time.Time
}

func NewHistoryService(historyRepo HistoryRepository, caseRepo CaseRepository) *historyService {
	return &historyService{
		historyRepo: historyRepo,
		caseRepo:    caseRepo,
		now:         time.Now,
	}
}

// RecordProgress stores the viewer's latest position in a case. Progress is
// clamped to [0, 100] and replaces any earlier entry for the same case.
func (s *historyService) RecordProgress(ctx context.Context, userID uint, caseID string, progress int) (*domain.WatchHistory, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when recording progress")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.caseRepo.FindByID(ctx, caseID); err != nil {
		logger.Error("failed to find watched case", "case_id", caseID, err)
		return nil, err
	}

	entry := &domain.WatchHistory{
		UserID:      userID,
		CaseID:      caseID,
		Progress:    clampProgress(progress),
		LastWatched: s.now().UTC(),
	}

	if err := s.historyRepo.Upsert(ctx, entry); err != nil {
		logger.Error("failed to record progress", "user_id", userID, "case_id", caseID, err)
		return nil, err
	}

	return entry, nil
}

// ListHistory returns the newest entries joined with their case. Entries whose
// case has since been deleted are skipped.
func (s *historyService) ListHistory(ctx context.Context, userID uint) ([]domain.HistoryItem, error) {
	rows, err := s.Entries(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CaseID)
	}

	cases, err := s.caseRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("failed to load watched cases", err)
		return nil, err
	}

	byID := make(map[string]domain.Case, len(cases))
	for _, c := range cases {
		byID[c.ID] = c
	}

	items := make([]domain.HistoryItem, 0, len(rows))
	for _, r := range rows {
		c, ok := byID[r.CaseID]
		if !ok {
			continue
		}
		items = append(items, domain.HistoryItem{Case: c, Progress: r.Progress, LastWatched: r.LastWatched})
	}

	return items, nil
}

// Entries returns raw history rows, most recent first.
func (s *historyService) Entries(ctx context.Context, userID uint, limit int) ([]domain.WatchHistory, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}

	rows, err := s.historyRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		logger.Error("failed to load watch history", "user_id", userID, err)
		return nil, err
	}

	return rows, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
