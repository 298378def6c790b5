package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crimeChronicles/business/recommendation"
	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const catalogSnapshotKey = "catalog:snapshot"

// CaseSource is the uncached catalog.
type CaseSource interface {
	FindAll(ctx context.Context) ([]domain.Case, error)
}

// CatalogCache keeps a JSON snapshot of the full catalog in redis so a
// recommendation pass does not hit postgres for every request.
type CatalogCache struct {
	client *redis.Client
	next   CaseSource
	ttl    time.Duration
}

var _ recommendation.CaseRepository = (*CatalogCache)(nil)

func NewCatalogCache(client *redis.Client, next CaseSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

// FindAll serves the snapshot when present and refills it from the source on a miss.
// Redis failures are logged and fall through to the source.
func (c *CatalogCache) FindAll(ctx context.Context) ([]domain.Case, error) {
	if c.client == nil || c.ttl <= 0 {
		return c.next.FindAll(ctx)
	}

	cases, err := c.get(ctx)
	if err == nil {
		return cases, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger.Warn("catalog cache read failed", err)
	}

	cases, err = c.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, cases); err != nil {
		logger.Warn("catalog cache write failed", err)
	}

	return cases, nil
}

// Invalidate drops the snapshot; the next FindAll reloads it.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, catalogSnapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}

	return nil
}

func (c *CatalogCache) get(ctx context.Context) ([]domain.Case, error) {
	val, err := c.client.Get(ctx, catalogSnapshotKey).Bytes()
	if err != nil {
		return nil, err
	}

	var cases []domain.Case
	if err := json.Unmarshal(val, &cases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog snapshot: %w", err)
	}

	return cases, nil
}

func (c *CatalogCache) set(ctx context.Context, cases []domain.Case) error {
	data, err := json.Marshal(cases)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}

	if err := c.client.Set(ctx, catalogSnapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store catalog snapshot: %w", err)
	}

	return nil
}
