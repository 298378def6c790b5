package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CaseRepository contract interface
type CaseRepository interface {
	FindByID(ctx context.Context, id string) (domain.Case, error)
	List(ctx context.Context, f domain.CaseFilter) ([]domain.Case, int64, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]domain.Case, error)
	Featured(ctx context.Context) (domain.Case, error)
	Similar(ctx context.Context, c domain.Case, limit int) ([]domain.Case, error)
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, id string) error
}

// CacheInvalidator drops derived copies of the catalog after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	similarLimit     = 6
)

var (
	ErrInvalidCase   = errors.New("invalid case data")
	ErrInvalidCaseID = errors.New("invalid case id")
	ErrInvalidSort   = errors.New("sortBy must be one of date, rating, popularity")
)

type catalogService struct {
	caseRepo CaseRepository
	cache    CacheInvalidator
	validate *validator.Validate
}

func NewCatalogService(caseRepo CaseRepository, cache CacheInvalidator) *catalogService {
	return &catalogService{
		caseRepo: caseRepo,
		cache:    cache,
		validate: validator.New(),
	}
}

func (s *catalogService) ListCases(ctx context.Context, f domain.CaseFilter) ([]domain.Case, domain.Pagination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing cases")
		return nil, domain.Pagination{}, fmt.Errorf("context error: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit = clampLimit(f.Limit)

	cases, total, err := s.caseRepo.List(ctx, f)
	if err != nil {
		logger.Error("failed to list cases", err)
		return nil, domain.Pagination{}, err
	}

	return cases, domain.Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// SearchCases returns nothing for a blank query.
func (s *catalogService) SearchCases(ctx context.Context, f domain.SearchFilter) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching cases")
		return nil, fmt.Errorf("context error: %w", err)
	}

	f.Q = strings.TrimSpace(f.Q)
	if f.Q == "" {
		return []domain.Case{}, nil
	}

	switch f.SortBy {
	case "":
		f.SortBy = domain.SortByRating
	case domain.SortByDate, domain.SortByRating, domain.SortByPopularity:
	default:
		return nil, ErrInvalidSort
	}
	f.Limit = clampLimit(f.Limit)

	cases, err := s.caseRepo.Search(ctx, f)
	if err != nil {
		logger.Error("failed to search cases", "q", f.Q, err)
		return nil, err
	}

	return cases, nil
}

func (s *catalogService) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	c, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find case by id", "case_id", id, err)
		return nil, err
	}

	return &c, nil
}

func (s *catalogService) GetFeatured(ctx context.Context) (*domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	c, err := s.caseRepo.Featured(ctx)
	if err != nil {
		logger.Error("failed to find featured case", err)
		return nil, err
	}

	return &c, nil
}

// GetSimilar returns up to six cases sharing the country or leading crime type.
func (s *catalogService) GetSimilar(ctx context.Context, id string) ([]domain.Case, error) {
	c, err := s.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	similar, err := s.caseRepo.Similar(ctx, *c, similarLimit)
	if err != nil {
		logger.Error("failed to find similar cases", "case_id", id, err)
		return nil, err
	}

	return similar, nil
}

func (s *catalogService) CreateCase(ctx context.Context, in domain.CaseInput) (*domain.Case, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create case")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid case data", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}

	c := caseFromInput(uuid.NewString(), in)
	if err := s.caseRepo.Create(ctx, &c); err != nil {
		logger.Error("failed to create new case", err)
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	s.invalidate(ctx)
	logger.Info("case created successfully", "case_id", c.ID)

	return &c, nil
}

func (s *catalogService) UpdateCase(ctx context.Context, id string, in domain.CaseInput) (*domain.Case, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating case")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid case data", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}

	c := caseFromInput(id, in)
	if err := s.caseRepo.Update(ctx, &c); err != nil {
		logger.Error("failed to update case", "case_id", id, err)
		return nil, err
	}

	s.invalidate(ctx)

	updated, err := s.caseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to fetch updated case", err)
		return nil, fmt.Errorf("failed to fetch updated case: %w", err)
	}

	return &updated, nil
}

func (s *catalogService) DeleteCase(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidCaseID
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.caseRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete case", "case_id", id, err)
		return err
	}

	s.invalidate(ctx)
	logger.Info("case deleted", "case_id", id)

	return nil
}

// a failed invalidation only delays visibility until the snapshot expires
func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate catalog cache", err)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func caseFromInput(id string, in domain.CaseInput) domain.Case {
	var timeline, facts datatypes.JSON
	if in.Timeline != nil {
		timeline, _ = json.Marshal(in.Timeline)
	}
	if in.Facts != nil {
		facts = domain.EncodeLabels(in.Facts)
	}

	return domain.Case{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Poster:      in.Poster,
		Backdrop:    in.Backdrop,
		Rating:      in.Rating,
		Year:        in.Year,
		Duration:    in.Duration,
		Country:     in.Country,
		CrimeType:   domain.EncodeLabels(in.CrimeType),
		Tags:        domain.EncodeLabels(in.Tags),
		Timeline:    timeline,
		Facts:       facts,
		Status:      in.Status,
		Victims:     in.Victims,
		VideoURL:    in.VideoURL,
	}
}
