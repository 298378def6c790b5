package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
)

type FavoriteRepository interface {
	FindCasesByUser(ctx context.Context, userID uint) ([]domain.Case, error)
	Add(ctx context.Context, fav *domain.Favorite) (bool, error)
	Remove(ctx context.Context, userID uint, caseID string) error
}

type CaseRepository interface {
	FindByID(ctx context.Context, id string) (domain.Case, error)
}

var (
	ErrInvalidUser   = errors.New("invalid user id")
	ErrInvalidCaseID = errors.New("caseId is required")
)

type favoriteService struct {
	favoriteRepo FavoriteRepository
	caseRepo     CaseRepository
	now          func() time.Time
}

func NewFavoriteService(favoriteRepo FavoriteRepository, caseRepo CaseRepository) *favoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		caseRepo:     caseRepo,
		now:          time.Now,
	}
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uint) ([]domain.Case, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cases, err := s.favoriteRepo.FindCasesByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to load favorites", "user_id", userID, err)
		return nil, err
	}
	if cases == nil {
		cases = []domain.Case{}
	}

	return cases, nil
}

// AddFavorite reports whether the case was newly added. Adding a case twice
// is not an error.
func (s *favoriteService) AddFavorite(ctx context.Context, userID uint, caseID string) (bool, error) {
	if userID == 0 {
		return false, ErrInvalidUser
	}
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return false, ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding favorite")
		return false, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.caseRepo.FindByID(ctx, caseID); err != nil {
		return false, err
	}

	added, err := s.favoriteRepo.Add(ctx, &domain.Favorite{
		UserID:    userID,
		CaseID:    caseID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		logger.Error("failed to add favorite", "user_id", userID, "case_id", caseID, err)
		return false, err
	}

	return added, nil
}

// RemoveFavorite succeeds whether or not the case was a favorite.
func (s *favoriteService) RemoveFavorite(ctx context.Context, userID uint, caseID string) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.favoriteRepo.Remove(ctx, userID, caseID); err != nil {
		logger.Error("failed to remove favorite", "user_id", userID, "case_id", caseID, err)
		return err
	}

	return nil
}
