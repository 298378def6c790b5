package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crimeChronicles/business/catalog"
	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	ListCases(ctx context.Context, f domain.CaseFilter) ([]domain.Case, domain.Pagination, error)
	SearchCases(ctx context.Context, f domain.SearchFilter) ([]domain.Case, error)
	GetCase(ctx context.Context, id string) (*domain.Case, error)
	GetFeatured(ctx context.Context) (*domain.Case, error)
	GetSimilar(ctx context.Context, id string) ([]domain.Case, error)
	CreateCase(ctx context.Context, in domain.CaseInput) (*domain.Case, error)
	UpdateCase(ctx context.Context, id string, in domain.CaseInput) (*domain.Case, error)
	DeleteCase(ctx context.Context, id string) error
}

type CaseHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewCaseHandler(catalogService CatalogService) *CaseHandler {
	return &CaseHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

// catalogStatus maps service errors onto HTTP status codes.
func catalogStatus(err error) int {
	switch {
	case err.Error() == "case not found":
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidCase),
		errors.Is(err, catalog.ErrInvalidCaseID),
		errors.Is(err, catalog.ErrInvalidSort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/cases?page=1&limit=20&country=USA&status=Solved&crimeType=...&search=...
func (h *CaseHandler) ListCases(c echo.Context) error {
	var f domain.CaseFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cases, page, err := h.catalogService.ListCases(ctx, f)
	if err != nil {
		logger.Error("Failed to list cases", err)
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"cases":      cases,
		"pagination": page,
	}))
}

// GET /api/v1/search?q=...&sortBy=rating
func (h *CaseHandler) Search(c echo.Context) error {
	var f domain.SearchFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cases, err := h.catalogService.SearchCases(ctx, f)
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cases))
}

func (h *CaseHandler) GetCase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.catalogService.GetCase(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

func (h *CaseHandler) GetFeatured(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	featured, err := h.catalogService.GetFeatured(ctx)
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(featured))
}

func (h *CaseHandler) GetSimilar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	similar, err := h.catalogService.GetSimilar(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(similar))
}

func (h *CaseHandler) CreateCase(c echo.Context) error {
	var req domain.CaseInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.catalogService.CreateCase(ctx, req)
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *CaseHandler) UpdateCase(c echo.Context) error {
	var req domain.CaseInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.catalogService.UpdateCase(ctx, c.Param("id"), req)
	if err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *CaseHandler) DeleteCase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteCase(ctx, c.Param("id")); err != nil {
		return c.JSON(catalogStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Case deleted successfully"))
}
