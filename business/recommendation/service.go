package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
)

// ---- Repository interfaces ----

type CaseRepository interface {
	FindAll(ctx context.Context) ([]domain.Case, error)
}

type HistoryRepository interface {
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.WatchHistory, error)
	// every case the viewer ever watched, without the history window
	WatchedCaseIDs(ctx context.Context, userID uint) ([]string, error)
}

// read/write the tunable weights row.
type ConfigRepository interface {
	GetConfig(ctx context.Context, key string) (domain.RecommendationConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.RecommendationConfig) error
}

type Options struct {
	DefaultLimit int
	MaxLimit     int
	HistoryLimit int
	CatalogCap   int
}

const (
	defaultLimit        = 10
	defaultMaxLimit     = 50
	defaultHistoryLimit = 50
	defaultCatalogCap   = 5000
)

func DefaultOptions() Options {
	return Options{
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
		HistoryLimit: defaultHistoryLimit,
		CatalogCap:   defaultCatalogCap,
	}
}

// ---- Usecase / Service ----

type Service struct {
	caseRepo       CaseRepository
	historyRepo    HistoryRepository
	cfgRepo        ConfigRepository
	defaultWeights Weights
	opts           Options
}

func NewService(
	caseRepo CaseRepository,
	historyRepo HistoryRepository,
	cfgRepo ConfigRepository,
	defaultWeights Weights,
	opts Options,
) *Service {
	def := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = def.HistoryLimit
	}
	if opts.CatalogCap <= 0 {
		opts.CatalogCap = def.CatalogCap
	}

	return &Service{
		caseRepo:       caseRepo,
		historyRepo:    historyRepo,
		cfgRepo:        cfgRepo,
		defaultWeights: defaultWeights,
		opts:           opts,
	}
}

// pass is everything one scoring pass needs, loaded from storage.
type pass struct {
	cases   []domain.Case
	catalog []CatalogItem
	history []WatchEntry
	watched []string
	weights Weights
}

func (s *Service) load(ctx context.Context, userID uint) (pass, error) {
	if err := ctx.Err(); err != nil {
		return pass{}, fmt.Errorf("context error: %w", err)
	}

	cases, err := s.caseRepo.FindAll(ctx)
	if err != nil {
		return pass{}, fmt.Errorf("load catalog: %w", err)
	}
	if len(cases) > s.opts.CatalogCap {
		cases = cases[:s.opts.CatalogCap]
	}

	rows, err := s.historyRepo.FindByUser(ctx, userID, s.opts.HistoryLimit)
	if err != nil {
		return pass{}, fmt.Errorf("load watch history: %w", err)
	}

	// the profile only reads the newest entries, exclusion covers all of them
	var watched []string
	if len(rows) >= s.opts.HistoryLimit {
		watched, err = s.historyRepo.WatchedCaseIDs(ctx, userID)
		if err != nil {
			return pass{}, fmt.Errorf("load watched cases: %w", err)
		}
	}

	return pass{
		cases:   cases,
		catalog: ItemsFromCases(cases),
		history: EntriesFromHistory(rows),
		watched: watched,
		weights: s.loadWeights(ctx),
	}, nil
}

func (s *Service) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		return s.opts.MaxLimit
	}
	return limit
}

func (s *Service) run(ctx context.Context, userID uint, limit int) (pass, Result, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return pass{}, Result{}, err
	}

	start := time.Now()
	res := RecommendExcluding(p.history, p.watched, p.catalog, limit, p.weights)
	RecommendationScoringDuration.Observe(time.Since(start).Seconds())
	RecommendationCatalogSize.Observe(float64(len(p.catalog)))
	RecommendationsServedTotal.WithLabelValues(modeLabel(res)).Inc()
	RecommendationPaddedItemsTotal.Add(float64(res.PaddedCount()))

	if res.Degraded {
		logger.Warn("recommendation pass degraded to empty list",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", userID,
		)
	}

	logger.Debug("recommendation_pass",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"history_count", len(p.history),
		"catalog_count", len(p.catalog),
		"result_count", len(res.Ranked),
		"padded", res.PaddedCount(),
		"cold_start", res.ColdStart,
	)

	return p, res, nil
}

// Recommend returns up to limit cases for a viewer, best first.
// limit <= 0 uses the configured default and is capped at the configured maximum.
func (s *Service) Recommend(ctx context.Context, userID uint, limit int) ([]domain.Case, error) {
	limit = s.normalizeLimit(limit)

	p, res, err := s.run(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	index := make(map[string]domain.Case, len(p.cases))
	for _, c := range p.cases {
		if _, ok := index[c.ID]; !ok {
			index[c.ID] = c
		}
	}

	out := make([]domain.Case, 0, len(res.Ranked))
	for _, rk := range res.Ranked {
		if c, ok := index[rk.Item.ID]; ok {
			out = append(out, c)
		}
	}

	return out, nil
}

// Debug returns the ranked list with per-facet score contributions.
func (s *Service) Debug(ctx context.Context, userID uint, limit int) ([]domain.DebugRecommendation, error) {
	limit = s.normalizeLimit(limit)

	p, res, err := s.run(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(p.cases))
	for _, c := range p.cases {
		titles[c.ID] = c.Title
	}

	out := make([]domain.DebugRecommendation, 0, len(res.Ranked))
	for _, rk := range res.Ranked {
		out = append(out, domain.DebugRecommendation{
			CaseID:         rk.Item.ID,
			Title:          titles[rk.Item.ID],
			Rating:         rk.Item.Rating,
			CountryScore:   rk.Breakdown.Country,
			CrimeTypeScore: rk.Breakdown.CrimeType,
			TagScore:       rk.Breakdown.Tag,
			RatingScore:    rk.Breakdown.Rating,
			FinalScore:     rk.Score,
			Padded:         rk.Padded,
		})
	}

	return out, nil
}

// Profile returns the viewer's current preference profile.
func (s *Service) Profile(ctx context.Context, userID uint) (Profile, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	resolved := ResolveHistory(OrderHistory(p.history), p.catalog)
	return BuildProfile(resolved, p.weights), nil
}

// GetWeights returns the weights currently in effect.
func (s *Service) GetWeights(ctx context.Context) (domain.RecommendationConfig, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationConfig{}, fmt.Errorf("context error: %w", err)
	}

	return ConfigFromWeights(DefaultConfigKey, s.loadWeights(ctx)), nil
}

var ErrConfigStoreUnavailable = errors.New("recommendation config store is not configured")

// UpsertWeights validates and stores new weights.
func (s *Service) UpsertWeights(ctx context.Context, cfg domain.RecommendationConfig) (domain.RecommendationConfig, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationConfig{}, fmt.Errorf("context error: %w", err)
	}
	if s.cfgRepo == nil {
		return domain.RecommendationConfig{}, ErrConfigStoreUnavailable
	}

	w := WeightsFromConfig(cfg)
	if err := w.Validate(); err != nil {
		return domain.RecommendationConfig{}, err
	}

	row := ConfigFromWeights(DefaultConfigKey, w)
	if err := s.cfgRepo.UpsertConfig(ctx, row); err != nil {
		return domain.RecommendationConfig{}, fmt.Errorf("failed to save recommendation config: %w", err)
	}

	logger.Info("recommendation weights updated",
		"country", w.Country,
		"crime_type", w.CrimeType,
		"tag", w.Tag,
		"rating", w.Rating,
	)

	return row, nil
}
