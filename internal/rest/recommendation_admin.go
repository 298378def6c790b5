package rest

import (
	"context"
	"errors"
	"net/http"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"

	"github.com/labstack/echo/v4"
)

type WeightsService interface {
	GetWeights(ctx context.Context) (domain.RecommendationConfig, error)
	UpsertWeights(ctx context.Context, cfg domain.RecommendationConfig) (domain.RecommendationConfig, error)
}

type RecommendationAdminHandler struct {
	weights WeightsService
}

func NewRecommendationAdminHandler(weights WeightsService) *RecommendationAdminHandler {
	return &RecommendationAdminHandler{weights: weights}
}

// GET /api/v1/admin/recommendations/config
func (h *RecommendationAdminHandler) GetConfig(c echo.Context) error {
	cfg, err := h.weights.GetWeights(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/recommendations/config
// body: RecommendationConfig JSON
func (h *RecommendationAdminHandler) UpsertConfig(c echo.Context) error {
	var body domain.RecommendationConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	saved, err := h.weights.UpsertWeights(c.Request().Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, recommendation.ErrFacetOrder),
			errors.Is(err, recommendation.ErrCompletionOrder),
			errors.Is(err, recommendation.ErrThresholdOrder):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, recommendation.ErrConfigStoreUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"config": saved,
	})
}
