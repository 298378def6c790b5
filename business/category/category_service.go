package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, upd domain.CategoryUpdate) error
	Delete(ctx context.Context, id string) error
	AddCase(ctx context.Context, categoryID, caseID string) error
	RemoveCase(ctx context.Context, categoryID, caseID string) error
}

type CaseRepository interface {
	FindByID(ctx context.Context, id string) (domain.Case, error)
}

var (
	ErrInvalidCategory   = errors.New("invalid category data")
	ErrInvalidCategoryID = errors.New("invalid category id")
	ErrCategoryExists    = errors.New("category already exists")
	ErrNothingToUpdate   = errors.New("no fields to update")
)

type categoryService struct {
	categoryRepo CategoryRepository
	caseRepo     CaseRepository
	validate     *validator.Validate
}

func NewCategoryService(categoryRepo CategoryRepository, caseRepo CaseRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		caseRepo:     caseRepo,
		validate:     validator.New(),
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category by id")
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Category{}, ErrInvalidCategoryID
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", "category_id", id, err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid category data", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	if in.ID == "" {
		in.ID = uuid.NewString()
	} else if _, err := s.categoryRepo.FindByID(ctx, in.ID); err == nil {
		return nil, ErrCategoryExists
	} else if err.Error() != "category not found" {
		return nil, err
	}

	category := &domain.Category{ID: in.ID, Name: in.Name, OrderIndex: in.OrderIndex}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.Cases = []domain.CaseSummary{}

	logger.Info("category created successfully", "category_id", category.ID)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, upd domain.CategoryUpdate) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidCategoryID
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
	}
	if upd.Name == nil && upd.OrderIndex == nil {
		return nil, ErrNothingToUpdate
	}
	if err := s.validate.Struct(&upd); err != nil {
		logger.Error("Invalid category data", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	if err := s.categoryRepo.Update(ctx, id, upd); err != nil {
		logger.Error("failed to update category", "category_id", id, err)
		return nil, err
	}

	updated, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to fetch updated category", err)
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	logger.Info("category updated successfully", "category_id", id)

	return &updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidCategoryID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting category")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", "category_id", id, err)
		return err
	}

	logger.Info("category deleted successfully", "category_id", id)

	return nil
}

// AddCase puts an existing case into an existing category and returns the
// category with its refreshed case list.
func (s *categoryService) AddCase(ctx context.Context, categoryID, caseID string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categoryID, caseID = strings.TrimSpace(categoryID), strings.TrimSpace(caseID)
	if categoryID == "" {
		return nil, ErrInvalidCategoryID
	}

	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	if _, err := s.caseRepo.FindByID(ctx, caseID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.AddCase(ctx, categoryID, caseID); err != nil {
		logger.Error("failed to add case to category", "category_id", categoryID, "case_id", caseID, err)
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *categoryService) RemoveCase(ctx context.Context, categoryID, caseID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	categoryID, caseID = strings.TrimSpace(categoryID), strings.TrimSpace(caseID)
	if categoryID == "" {
		return ErrInvalidCategoryID
	}

	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.RemoveCase(ctx, categoryID, caseID); err != nil {
		logger.Error("failed to remove case from category", "category_id", categoryID, "case_id", caseID, err)
		return err
	}

	return nil
}
