package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaseRepository struct {
	DB *gorm.DB
}

var _ recommendation.CaseRepository = (*CaseRepository)(nil)

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{
		DB: db,
	}
}

// FindAll returns the whole catalog, best rated first.
func (r *CaseRepository) FindAll(ctx context.Context) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var cases []domain.Case
	err := r.DB.WithContext(ctx).
		Order("rating DESC").
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cases: %w", err)
	}

	return cases, nil
}

func (r *CaseRepository) FindByID(ctx context.Context, id string) (domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return domain.Case{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Case
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Case{}, errors.New("case not found")
		}
		return domain.Case{}, fmt.Errorf("failed to find case: %w", err)
	}

	return c, nil
}

func (r *CaseRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Case{}, nil
	}

	var cases []domain.Case
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to find cases: %w", err)
	}

	return cases, nil
}

// List returns one page of cases, newest first, plus the total match count.
func (r *CaseRepository) List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Case{})
	query = applyFacetFilters(query, f.Country, f.Status, f.CrimeType)
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	var cases []domain.Case
	err := query.
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&cases).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}

	return cases, total, nil
}

// Search matches q against title, description and country, and exactly against
// the tags and crime_type labels. Title matches rank first, then description
// matches, then the requested sort applies.
func (r *CaseRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	term := strings.TrimSpace(f.Q)
	pattern := "%" + term + "%"
	label := string(domain.EncodeLabels([]string{term}))

	query := r.DB.WithContext(ctx).Model(&domain.Case{}).
		Where("(title ILIKE ? OR description ILIKE ? OR country ILIKE ? OR tags @> ? OR crime_type @> ?)",
			pattern, pattern, pattern, label, label)
	query = applyFacetFilters(query, f.Country, f.Status, f.CrimeType)
	if f.YearFrom > 0 {
		query = query.Where("year >= ?", f.YearFrom)
	}
	if f.YearTo > 0 {
		query = query.Where("year <= ?", f.YearTo)
	}

	// one ORDER BY clause: gorm drops an expression order once a plain one is added
	var cases []domain.Case
	err := query.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN title ILIKE ? THEN 1 WHEN description ILIKE ? THEN 2 ELSE 3 END, " + searchOrder(f.SortBy, f.SortOrder),
			Vars:               []interface{}{pattern, pattern},
			WithoutParentheses: true,
		}}).
		Limit(f.Limit).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search cases: %w", err)
	}

	return cases, nil
}

// Featured returns the best rated case, newest on ties.
func (r *CaseRepository) Featured(ctx context.Context) (domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return domain.Case{}, fmt.Errorf("context error: %w", err)
	}

	var c domain.Case
	err := r.DB.WithContext(ctx).
		Order("rating DESC").
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Case{}, errors.New("case not found")
		}
		return domain.Case{}, fmt.Errorf("failed to find featured case: %w", err)
	}

	return c, nil
}

// Similar returns cases sharing the country or the first crime type of c.
func (r *CaseRepository) Similar(ctx context.Context, c domain.Case, limit int) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Where("id <> ?", c.ID)

	crimeTypes, _ := c.CrimeTypes()
	if len(crimeTypes) > 0 {
		query = query.Where("(country = ? OR crime_type @> ?)", c.Country, string(domain.EncodeLabels(crimeTypes[:1])))
	} else {
		query = query.Where("country = ?", c.Country)
	}

	var cases []domain.Case
	if err := query.Order("rating DESC").Limit(limit).Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to find similar cases: %w", err)
	}

	return cases, nil
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	return nil
}

func (r *CaseRepository) Update(ctx context.Context, c *domain.Case) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":       c.Title,
		"description": c.Description,
		"poster":      c.Poster,
		"backdrop":    c.Backdrop,
		"rating":      c.Rating,
		"year":        c.Year,
		"duration":    c.Duration,
		"country":     c.Country,
		"crime_type":  c.CrimeType,
		"tags":        c.Tags,
		"timeline":    c.Timeline,
		"facts":       c.Facts,
		"status":      c.Status,
		"victims":     c.Victims,
		"video_url":   c.VideoURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Case{}).Where("id = ?", c.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update case: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("case not found")
	}

	return nil
}

func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Case{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete case: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("case not found")
	}

	return nil
}

func applyFacetFilters(query *gorm.DB, country, status, crimeType string) *gorm.DB {
	if country != "" {
		query = query.Where("country = ?", country)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if crimeType != "" {
		query = query.Where("crime_type @> ?", string(domain.EncodeLabels([]string{crimeType})))
	}
	return query
}

// popularity has no signal of its own and sorts by rating.
func searchOrder(sortBy, sortOrder string) string {
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}

	switch sortBy {
	case domain.SortByDate:
		return "created_at " + dir
	default:
		return "rating " + dir
	}
}
