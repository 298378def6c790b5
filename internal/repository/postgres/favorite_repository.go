package postgres

import (
	"context"
	"fmt"

	"crimeChronicles/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// FindCasesByUser returns the favorited cases, most recently added first.
func (r *FavoriteRepository) FindCasesByUser(ctx context.Context, userID uint) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var cases []domain.Case
	err := r.DB.WithContext(ctx).
		Model(&domain.Case{}).
		Joins("JOIN user_favorites ON user_favorites.case_id = cases.id").
		Where("user_favorites.user_id = ?", userID).
		Order("user_favorites.created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}

	return cases, nil
}

// Add reports whether a new row was written; an existing favorite is left as is.
func (r *FavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add favorite: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID uint, caseID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND case_id = ?", userID, caseID).
		Delete(&domain.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}
