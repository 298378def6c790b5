package postgres

import (
	"context"
	"fmt"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository struct {
	DB *gorm.DB
}

var _ recommendation.HistoryRepository = (*WatchHistoryRepository)(nil)

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{DB: db}
}

// FindByUser returns up to limit entries, most recently watched first.
func (r *WatchHistoryRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.WatchHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.WatchHistory
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_watched DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find watch history: %w", err)
	}

	return rows, nil
}

func (r *WatchHistoryRepository) WatchedCaseIDs(ctx context.Context, userID uint) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&domain.WatchHistory{}).
		Where("user_id = ?", userID).
		Pluck("case_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find watched cases: %w", err)
	}

	return ids, nil
}

// Upsert keeps one row per (user, case).
func (r *WatchHistoryRepository) Upsert(ctx context.Context, entry *domain.WatchHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "case_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "last_watched"}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to save watch history: %w", err)
	}

	return nil
}
