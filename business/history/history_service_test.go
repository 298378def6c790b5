package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"crimeChronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryRepo struct {
	rows      []domain.WatchHistory
	upserted  []domain.WatchHistory
	lastLimit int
	err       error
}

func (r *fakeHistoryRepo) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.WatchHistory, error) {
	r.lastLimit = limit
	return r.rows, r.err
}

func (r *fakeHistoryRepo) Upsert(ctx context.Context, entry *domain.WatchHistory) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, *entry)
	return nil
}

type fakeCaseRepo struct {
	cases map[string]domain.Case
}

func (r *fakeCaseRepo) FindByID(ctx context.Context, id string) (domain.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return domain.Case{}, errors.New("case not found")
	}
	return c, nil
}

func (r *fakeCaseRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Case, error) {
	out := []domain.Case{}
	for _, id := range ids {
		if c, ok := r.cases[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCases() *fakeCaseRepo {
	return &fakeCaseRepo{cases: map[string]domain.Case{
		"a": {ID: "a", Title: "Alpha"},
		"b": {ID: "b", Title: "Bravo"},
	}}
}

func TestRecordProgress_Clamps(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := NewHistoryService(repo, newCases())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{42, 42},
		{150, 100},
	}

	for _, tt := range tests {
		entry, err := svc.RecordProgress(context.Background(), 1, "a", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, entry.Progress)
		assert.Equal(t, fixed, entry.LastWatched)
	}
	assert.Len(t, repo.upserted, 3)
}

func TestRecordProgress_Errors(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := NewHistoryService(repo, newCases())

	_, err := svc.RecordProgress(context.Background(), 0, "a", 10)
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = svc.RecordProgress(context.Background(), 1, " ", 10)
	assert.ErrorIs(t, err, ErrInvalidCaseID)

	_, err = svc.RecordProgress(context.Background(), 1, "zzz", 10)
	assert.EqualError(t, err, "case not found")
	assert.Empty(t, repo.upserted)
}

func TestListHistory_JoinsAndSkipsDeleted(t *testing.T) {
	now := time.Now()
	repo := &fakeHistoryRepo{rows: []domain.WatchHistory{
		{UserID: 1, CaseID: "b", Progress: 30, LastWatched: now},
		{UserID: 1, CaseID: "deleted", Progress: 100, LastWatched: now.Add(-time.Minute)},
		{UserID: 1, CaseID: "a", Progress: 80, LastWatched: now.Add(-time.Hour)},
	}}
	svc := NewHistoryService(repo, newCases())

	items, err := svc.ListHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bravo", items[0].Title)
	assert.Equal(t, 30, items[0].Progress)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, listLimit, repo.lastLimit)
}

func TestEntries_LimitBounds(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := NewHistoryService(repo, newCases())

	_, err := svc.Entries(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, listLimit, repo.lastLimit)

	_, err = svc.Entries(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
}
