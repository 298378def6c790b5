package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crimeChronicles/business/history"
	"crimeChronicles/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	HistoryHandler struct {
		validate       *validator.Validate
		historyService HistoryService
		timeout        time.Duration
	}

	HistoryService interface {
		RecordProgress(ctx context.Context, userID uint, caseID string, progress int) (*domain.WatchHistory, error)
		ListHistory(ctx context.Context, userID uint) ([]domain.HistoryItem, error)
	}

	// progress outside 0..100 is clamped by the service
	RecordProgressRequest struct {
		CaseID   string `json:"caseId" validate:"required"`
		Progress *int   `json:"progress" validate:"required"`
	}
)

func NewHistoryHandler(svc HistoryService) *HistoryHandler {
	return &HistoryHandler{
		validate:       validator.New(),
		historyService: svc,
		timeout:        10 * time.Second,
	}
}

// GET /api/v1/users/me/history
func (h *HistoryHandler) ListHistory(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.historyService.ListHistory(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// POST /api/v1/users/me/history
// body: { "caseId": "...", "progress": 42 }
func (h *HistoryHandler) RecordProgress(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req RecordProgressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entry, err := h.historyService.RecordProgress(ctx, uid, req.CaseID, *req.Progress)
	if err != nil {
		switch {
		case err.Error() == "case not found":
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, history.ErrInvalidCaseID), errors.Is(err, history.ErrInvalidUser):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entry))
}
