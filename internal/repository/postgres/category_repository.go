package postgres

import (
	"context"
	"errors"
	"fmt"

	"crimeChronicles/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

// categoryCaseRow is one member case joined with the category it belongs to.
type categoryCaseRow struct {
	CategoryID string
	domain.CaseSummary
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, errors.New("category not found")
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}

	members, err := r.members(ctx, []string{category.ID})
	if err != nil {
		return domain.Category{}, err
	}
	category.Cases = members[category.ID]

	return category, nil
}

// FindAll returns every category in display order, each with its cases.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).Order("order_index ASC").Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	if len(categories) == 0 {
		return []domain.Category{}, nil
	}

	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	members, err := r.members(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].Cases = members[categories[i].ID]
	}

	return categories, nil
}

// members loads the case cards of the given categories in one query. Every
// requested category gets a non-nil slice.
func (r *CategoryRepository) members(ctx context.Context, categoryIDs []string) (map[string][]domain.CaseSummary, error) {
	var rows []categoryCaseRow
	err := r.DB.WithContext(ctx).
		Table("category_cases").
		Select("category_cases.category_id, cases.id, cases.title, cases.poster, cases.rating, cases.year, cases.status").
		Joins("JOIN cases ON cases.id = category_cases.case_id").
		Where("category_cases.category_id IN ?", categoryIDs).
		Order("cases.rating DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find category cases: %w", err)
	}

	out := make(map[string][]domain.CaseSummary, len(categoryIDs))
	for _, id := range categoryIDs {
		out[id] = []domain.CaseSummary{}
	}
	for _, row := range rows {
		out[row.CategoryID] = append(out[row.CategoryID], row.CaseSummary)
	}

	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, upd domain.CategoryUpdate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{}
	if upd.Name != nil {
		updateData["name"] = *upd.Name
	}
	if upd.OrderIndex != nil {
		updateData["order_index"] = *upd.OrderIndex
	}

	result := r.DB.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("category not found")
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("category not found")
	}

	return nil
}

// AddCase is idempotent.
func (r *CategoryRepository) AddCase(ctx context.Context, categoryID, caseID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CategoryCase{CategoryID: categoryID, CaseID: caseID}).Error
	if err != nil {
		return fmt.Errorf("failed to add case to category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) RemoveCase(ctx context.Context, categoryID, caseID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("category_id = ? AND case_id = ?", categoryID, caseID).
		Delete(&domain.CategoryCase{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove case from category: %w", err)
	}

	return nil
}
