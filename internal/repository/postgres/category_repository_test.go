package postgres

import (
	"context"
	"testing"
	"time"

	"crimeChronicles/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "name", "order_index", "created_at", "updated_at"}

var memberColumns = []string{"category_id", "id", "title", "poster", "rating", "year", "status"}

func TestCategoryRepository_FindAll_WithCases(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY order_index ASC,name ASC`).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow("serial", "Serial Killers", 1, now, now).
			AddRow("empty", "Empty", 2, now, now))
	mock.ExpectQuery(`SELECT category_cases.category_id, cases.id, cases.title, cases.poster, cases.rating, cases.year, cases.status ` +
		`FROM "?category_cases"? JOIN cases ON cases.id = category_cases.case_id ` +
		`WHERE category_cases.category_id IN \(\$1,\$2\) ORDER BY cases.rating DESC`).
		WithArgs("serial", "empty").
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow("serial", "zodiac", "The Zodiac Killer", "", 8.7, 1969, domain.CaseStatusColdCase).
			AddRow("serial", "btk", "BTK", "", 7.9, 1974, domain.CaseStatusSolved))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "serial", got[0].ID)
	require.Len(t, got[0].Cases, 2)
	assert.Equal(t, "zodiac", got[0].Cases[0].ID)
	assert.Equal(t, "The Zodiac Killer", got[0].Cases[0].Title)
	assert.Equal(t, 1969, got[0].Cases[0].Year)

	assert.NotNil(t, got[1].Cases)
	assert.Empty(t, got[1].Cases)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.EqualError(t, err, "category not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Update_OnlyGivenFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	order := 3
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "categories" SET "order_index"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), "serial", domain.CategoryUpdate{OrderIndex: &order}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.EqualError(t, repo.Delete(context.Background(), "ghost"), "category not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_AddCase_IgnoresDuplicates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "category_cases" \("category_id","case_id"\) VALUES \(\$1,\$2\) ON CONFLICT DO NOTHING`).
		WithArgs("serial", "zodiac").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.AddCase(context.Background(), "serial", "zodiac"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_RemoveCase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "category_cases" WHERE category_id = \$1 AND case_id = \$2`).
		WithArgs("serial", "zodiac").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RemoveCase(context.Background(), "serial", "zodiac"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
