package rest

import (
	"context"
	"net/http"
	"time"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
	"crimeChronicles/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate   *validator.Validate
		recService RecommendationService
		timeout    time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, limit int) ([]domain.Case, error)
		Debug(ctx context.Context, userID uint, limit int) ([]domain.DebugRecommendation, error)
		Profile(ctx context.Context, userID uint) (recommendation.Profile, error)
	}

	// limit 0 means the configured default; values above the maximum are capped
	RecommendQuery struct {
		Limit int `query:"limit" validate:"gte=0"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:   validator.New(),
		recService: svc,
		timeout:    10 * time.Second,
	}
}

func observe(endpoint string, start time.Time, status int) {
	metrics.RecommendHandlerLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.RecommendHandlerRequests.WithLabelValues(endpoint, metrics.StatusClass(status)).Inc()
}

func (h *RecommendationHandler) bind(c echo.Context) (uint, RecommendQuery, int, error) {
	uid, err := userID(c)
	if err != nil {
		return 0, RecommendQuery{}, http.StatusUnauthorized, err
	}

	var q RecommendQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return 0, RecommendQuery{}, http.StatusBadRequest, err
	}
	if err := h.validate.Struct(&q); err != nil {
		return 0, RecommendQuery{}, http.StatusBadRequest, err
	}

	return uid, q, http.StatusOK, nil
}

// the request context already carries the trace id set by middleware.RequestTrace
func (h *RecommendationHandler) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.timeout)
}

// GET /api/v1/users/me/recommendations?limit=N
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()

	uid, q, status, err := h.bind(c)
	if err != nil {
		observe("list", start, status)
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	recs, err := h.recService.Recommend(ctx, uid, q.Limit)
	if err != nil {
		logger.Error("failed to build recommendations", "user_id", uid, err)
		observe("list", start, http.StatusInternalServerError)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	observe("list", start, http.StatusOK)
	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/users/me/recommendations/debug?limit=N
func (h *RecommendationHandler) Debug(c echo.Context) error {
	start := time.Now()

	uid, q, status, err := h.bind(c)
	if err != nil {
		observe("debug", start, status)
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	recs, err := h.recService.Debug(ctx, uid, q.Limit)
	if err != nil {
		observe("debug", start, http.StatusInternalServerError)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	observe("debug", start, http.StatusOK)
	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/users/me/recommendations/profile
func (h *RecommendationHandler) Profile(c echo.Context) error {
	start := time.Now()

	uid, err := userID(c)
	if err != nil {
		observe("profile", start, http.StatusUnauthorized)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	profile, err := h.recService.Profile(ctx, uid)
	if err != nil {
		observe("profile", start, http.StatusInternalServerError)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	observe("profile", start, http.StatusOK)
	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}
