package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"crimeChronicles/business/category"
	"crimeChronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategories struct {
	created   domain.CategoryInput
	updated   domain.CategoryUpdate
	addedCase string
	err       error
}

func (f *fakeCategories) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "serial", Name: "Serial Killers", Cases: []domain.CaseSummary{{ID: "zodiac"}}}}, f.err
}

func (f *fakeCategories) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	if f.err != nil {
		return domain.Category{}, f.err
	}
	return domain.Category{ID: id, Name: "Serial Killers"}, nil
}

func (f *fakeCategories) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: in.ID, Name: in.Name}, nil
}

func (f *fakeCategories) UpdateCategory(ctx context.Context, id string, upd domain.CategoryUpdate) (*domain.Category, error) {
	f.updated = upd
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: id}, nil
}

func (f *fakeCategories) DeleteCategory(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeCategories) AddCase(ctx context.Context, categoryID, caseID string) (*domain.Category, error) {
	f.addedCase = caseID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: categoryID}, nil
}

func (f *fakeCategories) RemoveCase(ctx context.Context, categoryID, caseID string) error {
	return f.err
}

func TestCategoryHandler_GetAllCategories(t *testing.T) {
	h := NewCategoryHandler(&fakeCategories{})

	c, rec := newContext(http.MethodGet, "/api/v1/categories", "", 0)
	require.NoError(t, h.GetAllCategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"zodiac"`)
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	svc := &fakeCategories{}
	h := NewCategoryHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/categories", `{"id":"serial","name":"Serial Killers","orderIndex":2}`, 1)
	require.NoError(t, h.CreateCategory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, svc.created.OrderIndex)

	c, rec = newContext(http.MethodPost, "/api/v1/categories", `{"id":"serial"}`, 1)
	require.NoError(t, h.CreateCategory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = category.ErrCategoryExists
	c, rec = newContext(http.MethodPost, "/api/v1/categories", `{"id":"serial","name":"Again"}`, 1)
	require.NoError(t, h.CreateCategory(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryHandler_UpdateCategory_Partial(t *testing.T) {
	svc := &fakeCategories{}
	h := NewCategoryHandler(svc)

	c, rec := newContext(http.MethodPut, "/api/v1/categories/serial", `{"orderIndex":0}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("serial")
	require.NoError(t, h.UpdateCategory(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated.OrderIndex)
	assert.Equal(t, 0, *svc.updated.OrderIndex)
	assert.Nil(t, svc.updated.Name)
}

func TestCategoryHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"category not found", errors.New("category not found"), http.StatusNotFound},
		{"case not found", errors.New("case not found"), http.StatusNotFound},
		{"nothing to update", category.ErrNothingToUpdate, http.StatusBadRequest},
		{"invalid", fmt.Errorf("%w: name required", category.ErrInvalidCategory), http.StatusBadRequest},
		{"other", errors.New("failed to add case to category: boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCategoryHandler(&fakeCategories{err: tt.err})

			c, rec := newContext(http.MethodPut, "/api/v1/categories/serial/cases/zodiac", "", 1)
			c.SetParamNames("id", "caseId")
			c.SetParamValues("serial", "zodiac")
			require.NoError(t, h.AddCase(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
