package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"crimeChronicles/business/catalog"
	"crimeChronicles/business/history"
	"crimeChronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	listFilter   domain.CaseFilter
	searchFilter domain.SearchFilter
	created      domain.CaseInput
	err          error
}

func (f *fakeCatalog) ListCases(ctx context.Context, filter domain.CaseFilter) ([]domain.Case, domain.Pagination, error) {
	f.listFilter = filter
	return []domain.Case{{ID: "a"}}, domain.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1}, f.err
}

func (f *fakeCatalog) SearchCases(ctx context.Context, filter domain.SearchFilter) ([]domain.Case, error) {
	f.searchFilter = filter
	return []domain.Case{}, f.err
}

func (f *fakeCatalog) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Case{ID: id, Title: "Alpha"}, nil
}

func (f *fakeCatalog) GetFeatured(ctx context.Context) (*domain.Case, error) {
	return &domain.Case{ID: "top"}, f.err
}

func (f *fakeCatalog) GetSimilar(ctx context.Context, id string) ([]domain.Case, error) {
	return []domain.Case{}, f.err
}

func (f *fakeCatalog) CreateCase(ctx context.Context, in domain.CaseInput) (*domain.Case, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Case{ID: "new", Title: in.Title}, nil
}

func (f *fakeCatalog) UpdateCase(ctx context.Context, id string, in domain.CaseInput) (*domain.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Case{ID: id, Title: in.Title}, nil
}

func (f *fakeCatalog) DeleteCase(ctx context.Context, id string) error {
	return f.err
}

func TestCaseHandler_ListCases_BindsFilters(t *testing.T) {
	svc := &fakeCatalog{}
	h := NewCaseHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/cases?page=2&limit=5&country=USA&crimeType=Serial%20Killer", "", 0)
	require.NoError(t, h.ListCases(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.listFilter.Page)
	assert.Equal(t, 5, svc.listFilter.Limit)
	assert.Equal(t, "USA", svc.listFilter.Country)
	assert.Equal(t, "Serial Killer", svc.listFilter.CrimeType)
	assert.Contains(t, rec.Body.String(), `"totalPages":1`)
}

func TestCaseHandler_Search(t *testing.T) {
	svc := &fakeCatalog{}
	h := NewCaseHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/search?q=zodiac&sortBy=popularity&yearFrom=1960", "", 0)
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "zodiac", svc.searchFilter.Q)
	assert.Equal(t, domain.SortByPopularity, svc.searchFilter.SortBy)
	assert.Equal(t, 1960, svc.searchFilter.YearFrom)

	svc.err = catalog.ErrInvalidSort
	c, rec = newContext(http.MethodGet, "/api/v1/search?q=zodiac&sortBy=views", "", 0)
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.New("case not found"), http.StatusNotFound},
		{"invalid", fmt.Errorf("%w: title required", catalog.ErrInvalidCase), http.StatusBadRequest},
		{"invalid id", catalog.ErrInvalidCaseID, http.StatusBadRequest},
		{"other", errors.New("failed to find case: boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCaseHandler(&fakeCatalog{err: tt.err})

			c, rec := newContext(http.MethodGet, "/api/v1/cases/x", "", 0)
			c.SetParamNames("id")
			c.SetParamValues("x")
			require.NoError(t, h.GetCase(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCaseHandler_CreateCase(t *testing.T) {
	svc := &fakeCatalog{}
	h := NewCaseHandler(svc)

	body := `{"title":"Zodiac","description":"d","year":1969,"country":"USA","status":"Cold Case","crimeType":["Serial Killer"],"rating":8.5}`
	c, rec := newContext(http.MethodPost, "/api/v1/cases", body, 1)
	require.NoError(t, h.CreateCase(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Zodiac", svc.created.Title)
	assert.Equal(t, []string{"Serial Killer"}, svc.created.CrimeType)

	c, rec = newContext(http.MethodPost, "/api/v1/cases", `{"title":`, 1)
	require.NoError(t, h.CreateCase(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeHistory struct {
	caseID   string
	progress int
	err      error
}

func (f *fakeHistory) RecordProgress(ctx context.Context, userID uint, caseID string, progress int) (*domain.WatchHistory, error) {
	f.caseID, f.progress = caseID, progress
	if f.err != nil {
		return nil, f.err
	}
	return &domain.WatchHistory{UserID: userID, CaseID: caseID, Progress: progress}, nil
}

func (f *fakeHistory) ListHistory(ctx context.Context, userID uint) ([]domain.HistoryItem, error) {
	return []domain.HistoryItem{}, f.err
}

func TestHistoryHandler_RecordProgress(t *testing.T) {
	svc := &fakeHistory{}
	h := NewHistoryHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/users/me/history", `{"caseId":"a","progress":0}`, 3)
	require.NoError(t, h.RecordProgress(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a", svc.caseID)
	assert.Equal(t, 0, svc.progress)

	c, rec = newContext(http.MethodPost, "/api/v1/users/me/history", `{"caseId":"a"}`, 3)
	require.NoError(t, h.RecordProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodPost, "/api/v1/users/me/history", `{"caseId":"a","progress":10}`, 0)
	require.NoError(t, h.RecordProgress(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.err = errors.New("case not found")
	c, rec = newContext(http.MethodPost, "/api/v1/users/me/history", `{"caseId":"zzz","progress":10}`, 3)
	require.NoError(t, h.RecordProgress(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.err = history.ErrInvalidCaseID
	c, rec = newContext(http.MethodPost, "/api/v1/users/me/history", `{"caseId":" ","progress":10}`, 3)
	require.NoError(t, h.RecordProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandler_ListHistory(t *testing.T) {
	h := NewHistoryHandler(&fakeHistory{})

	c, rec := newContext(http.MethodGet, "/api/v1/users/me/history", "", 3)
	require.NoError(t, h.ListHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
