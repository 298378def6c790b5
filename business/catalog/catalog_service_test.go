package catalog

import (
	"context"
	"errors"
	"testing"

	"crimeChronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaseRepo struct {
	cases      map[string]domain.Case
	total      int64
	listFilter domain.CaseFilter
	search     domain.SearchFilter
	searched   bool
	simLimit   int
	created    []domain.Case
}

func newFakeCaseRepo(cases ...domain.Case) *fakeCaseRepo {
	r := &fakeCaseRepo{cases: map[string]domain.Case{}}
	for _, c := range cases {
		r.cases[c.ID] = c
	}
	return r
}

func (r *fakeCaseRepo) FindByID(ctx context.Context, id string) (domain.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return domain.Case{}, errors.New("case not found")
	}
	return c, nil
}

func (r *fakeCaseRepo) List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int64, error) {
	r.listFilter = f
	return []domain.Case{}, r.total, nil
}

func (r *fakeCaseRepo) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Case, error) {
	r.search = f
	r.searched = true
	return []domain.Case{}, nil
}

func (r *fakeCaseRepo) Featured(ctx context.Context) (domain.Case, error) {
	return domain.Case{}, errors.New("case not found")
}

func (r *fakeCaseRepo) Similar(ctx context.Context, c domain.Case, limit int) ([]domain.Case, error) {
	r.simLimit = limit
	return []domain.Case{}, nil
}

func (r *fakeCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	r.created = append(r.created, *c)
	r.cases[c.ID] = *c
	return nil
}

func (r *fakeCaseRepo) Update(ctx context.Context, c *domain.Case) error {
	if _, ok := r.cases[c.ID]; !ok {
		return errors.New("case not found")
	}
	r.cases[c.ID] = *c
	return nil
}

func (r *fakeCaseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.cases[id]; !ok {
		return errors.New("case not found")
	}
	delete(r.cases, id)
	return nil
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	return nil
}

func validInput() domain.CaseInput {
	return domain.CaseInput{
		Title:       "  The Zodiac Killer ",
		Description: "Unidentified serial killer in Northern California.",
		Rating:      8.7,
		Year:        1969,
		Country:     "USA",
		CrimeType:   []string{"Serial Killer"},
		Status:      domain.CaseStatusColdCase,
	}
}

func TestListCases_Pagination(t *testing.T) {
	repo := newFakeCaseRepo()
	repo.total = 45
	svc := NewCatalogService(repo, nil)

	_, page, err := svc.ListCases(context.Background(), domain.CaseFilter{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listFilter.Page)
	assert.Equal(t, maxPageLimit, repo.listFilter.Limit)
	assert.Equal(t, 1, page.TotalPages)

	_, page, err = svc.ListCases(context.Background(), domain.CaseFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, defaultPageLimit, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(45), page.Total)
}

func TestSearchCases(t *testing.T) {
	repo := newFakeCaseRepo()
	svc := NewCatalogService(repo, nil)

	got, err := svc.SearchCases(context.Background(), domain.SearchFilter{Q: "   "})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, repo.searched)

	_, err = svc.SearchCases(context.Background(), domain.SearchFilter{Q: "zodiac", SortBy: "views"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = svc.SearchCases(context.Background(), domain.SearchFilter{Q: " zodiac "})
	require.NoError(t, err)
	assert.Equal(t, "zodiac", repo.search.Q)
	assert.Equal(t, domain.SortByRating, repo.search.SortBy)
	assert.Equal(t, defaultPageLimit, repo.search.Limit)
}

func TestGetCase(t *testing.T) {
	svc := NewCatalogService(newFakeCaseRepo(domain.Case{ID: "a", Title: "Alpha"}), nil)

	c, err := svc.GetCase(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", c.Title)

	_, err = svc.GetCase(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCaseID)

	_, err = svc.GetCase(context.Background(), "nope")
	assert.EqualError(t, err, "case not found")
}

func TestGetSimilar(t *testing.T) {
	repo := newFakeCaseRepo(domain.Case{ID: "a", Country: "USA"})
	svc := NewCatalogService(repo, nil)

	_, err := svc.GetSimilar(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, similarLimit, repo.simLimit)

	_, err = svc.GetSimilar(context.Background(), "missing")
	assert.EqualError(t, err, "case not found")
}

func TestCreateCase(t *testing.T) {
	repo := newFakeCaseRepo()
	cache := &fakeCache{}
	svc := NewCatalogService(repo, cache)

	c, err := svc.CreateCase(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "The Zodiac Killer", c.Title)
	assert.Equal(t, 1, cache.invalidations)

	crimeTypes, err := c.CrimeTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Serial Killer"}, crimeTypes)

	tags, err := c.TagList()
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestCreateCase_Validation(t *testing.T) {
	repo := newFakeCaseRepo()
	svc := NewCatalogService(repo, nil)

	tests := []struct {
		name   string
		mutate func(in *domain.CaseInput)
	}{
		{"missing title", func(in *domain.CaseInput) { in.Title = "" }},
		{"rating above ten", func(in *domain.CaseInput) { in.Rating = 11 }},
		{"year out of range", func(in *domain.CaseInput) { in.Year = 1800 }},
		{"unknown status", func(in *domain.CaseInput) { in.Status = "Closed" }},
		{"missing country", func(in *domain.CaseInput) { in.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreateCase(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidCase)
		})
	}
	assert.Empty(t, repo.created)
}

func TestUpdateAndDeleteCase(t *testing.T) {
	repo := newFakeCaseRepo(domain.Case{ID: "a", Title: "Old"})
	cache := &fakeCache{}
	svc := NewCatalogService(repo, cache)

	updated, err := svc.UpdateCase(context.Background(), "a", validInput())
	require.NoError(t, err)
	assert.Equal(t, "The Zodiac Killer", updated.Title)

	_, err = svc.UpdateCase(context.Background(), "ghost", validInput())
	assert.EqualError(t, err, "case not found")

	require.NoError(t, svc.DeleteCase(context.Background(), "a"))
	assert.EqualError(t, svc.DeleteCase(context.Background(), "a"), "case not found")
	assert.Equal(t, 2, cache.invalidations)
}
