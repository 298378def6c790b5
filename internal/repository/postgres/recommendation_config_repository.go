package postgres

import (
	"context"
	"errors"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationConfigRepository struct {
	DB *gorm.DB
}

var _ recommendation.ConfigRepository = (*RecommendationConfigRepository)(nil)

func NewRecommendationConfigRepository(db *gorm.DB) *RecommendationConfigRepository {
	return &RecommendationConfigRepository{DB: db}
}

func (r *RecommendationConfigRepository) GetConfig(ctx context.Context, key string) (domain.RecommendationConfig, bool, error) {
	var cfg domain.RecommendationConfig

	err := r.DB.WithContext(ctx).
		Where("config_key = ?", key).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecommendationConfig{}, false, nil
	}
	if err != nil {
		return domain.RecommendationConfig{}, false, err
	}

	return cfg, true, nil
}

func (r *RecommendationConfigRepository) UpsertConfig(ctx context.Context, cfg domain.RecommendationConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "config_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"country_weight",
				"crime_type_weight",
				"tag_weight",
				"rating_weight",
				"completion_high",
				"completion_mid",
				"high_threshold",
				"mid_threshold",
				"updated_at",
			}),
		}).
		Create(&cfg).Error
}
