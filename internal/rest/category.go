package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crimeChronicles/business/category"
	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, upd domain.CategoryUpdate) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	AddCase(ctx context.Context, categoryID, caseID string) (*domain.Category, error)
	RemoveCase(ctx context.Context, categoryID, caseID string) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

func categoryStatus(err error) int {
	switch {
	case err.Error() == "category not found", err.Error() == "case not found":
		return http.StatusNotFound
	case errors.Is(err, category.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, category.ErrInvalidCategory),
		errors.Is(err, category.ErrInvalidCategoryID),
		errors.Is(err, category.ErrNothingToUpdate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/categories
func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.categoryService.GetCategoryByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req domain.CategoryInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.categoryService.CreateCategory(ctx, req)
	if err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req domain.CategoryUpdate
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.categoryService.UpdateCategory(ctx, c.Param("id"), req)
	if err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, c.Param("id")); err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Category deleted successfully"))
}

// PUT /api/v1/categories/:id/cases/:caseId
func (h *CategoryHandler) AddCase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.categoryService.AddCase(ctx, c.Param("id"), c.Param("caseId"))
	if err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

// DELETE /api/v1/categories/:id/cases/:caseId
func (h *CategoryHandler) RemoveCase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.RemoveCase(ctx, c.Param("id"), c.Param("caseId")); err != nil {
		return c.JSON(categoryStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Case removed from category"))
}
