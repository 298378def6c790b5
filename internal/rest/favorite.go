package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crimeChronicles/business/favorites"
	"crimeChronicles/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FavoriteHandler struct {
		validate        *validator.Validate
		favoriteService FavoriteService
		timeout         time.Duration
	}

	FavoriteService interface {
		ListFavorites(ctx context.Context, userID uint) ([]domain.Case, error)
		AddFavorite(ctx context.Context, userID uint, caseID string) (bool, error)
		RemoveFavorite(ctx context.Context, userID uint, caseID string) error
	}

	AddFavoriteRequest struct {
		CaseID string `json:"caseId" validate:"required"`
	}
)

func NewFavoriteHandler(svc FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		validate:        validator.New(),
		favoriteService: svc,
		timeout:         10 * time.Second,
	}
}

func favoriteStatus(err error) int {
	switch {
	case err.Error() == "case not found":
		return http.StatusNotFound
	case errors.Is(err, favorites.ErrInvalidCaseID), errors.Is(err, favorites.ErrInvalidUser):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/users/me/favorites
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cases, err := h.favoriteService.ListFavorites(ctx, uid)
	if err != nil {
		return c.JSON(favoriteStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cases))
}

// POST /api/v1/users/me/favorites
// body: { "caseId": "..." }
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	added, err := h.favoriteService.AddFavorite(ctx, uid, req.CaseID)
	if err != nil {
		return c.JSON(favoriteStatus(err), ResponseError{Message: err.Error()})
	}

	if !added {
		return c.JSON(http.StatusOK, fres.Response.StatusOK("Already in favorites"))
	}
	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Added to favorites"))
}

// DELETE /api/v1/users/me/favorites/:caseId
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.favoriteService.RemoveFavorite(ctx, uid, c.Param("caseId")); err != nil {
		return c.JSON(favoriteStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Removed from favorites"))
}
