package recommendation

import (
	"context"
	"time"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
)

// DefaultConfigKey is the recommendation_config row used for every viewer.
const DefaultConfigKey = "default"

// loadWeights reads the stored weights, falling back to defaultWeights when the
// row is missing, unreadable or violates the facet ordering.
func (s *Service) loadWeights(ctx context.Context) Weights {
	if s.cfgRepo == nil {
		return s.defaultWeights
	}

	row, ok, err := s.cfgRepo.GetConfig(ctx, DefaultConfigKey)
	if err != nil {
		logger.Warn("failed to load recommendation config, using defaults", err)
		return s.defaultWeights
	}
	if !ok {
		return s.defaultWeights
	}

	w := WeightsFromConfig(row)
	if err := w.Validate(); err != nil {
		logger.Warn("stored recommendation weights are invalid, using defaults", "key", row.Key, err)
		return s.defaultWeights
	}

	return w
}

func WeightsFromConfig(row domain.RecommendationConfig) Weights {
	return Weights{
		Country:        row.CountryWeight,
		CrimeType:      row.CrimeTypeWeight,
		Tag:            row.TagWeight,
		Rating:         row.RatingWeight,
		CompletionHigh: row.CompletionHigh,
		CompletionMid:  row.CompletionMid,
		HighThreshold:  row.HighThreshold,
		MidThreshold:   row.MidThreshold,
	}
}

func ConfigFromWeights(key string, w Weights) domain.RecommendationConfig {
	return domain.RecommendationConfig{
		Key:             key,
		CountryWeight:   w.Country,
		CrimeTypeWeight: w.CrimeType,
		TagWeight:       w.Tag,
		RatingWeight:    w.Rating,
		CompletionHigh:  w.CompletionHigh,
		CompletionMid:   w.CompletionMid,
		HighThreshold:   w.HighThreshold,
		MidThreshold:    w.MidThreshold,
		UpdatedAt:       time.Now(),
	}
}
