package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "catalog:materials"

// Service resolves the effective catalog: the built-in price list with
// persisted overrides applied, cached in Redis.
type Service struct {
	base   *Catalog
	repo   *Repository
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewService constructs Service. cache may be nil, in which case every
// call rebuilds from the repository.
func NewService(base *Catalog, repo *Repository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{base: base, repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Current returns the effective catalog. Concurrent cache misses are
// collapsed into a single rebuild.
func (s *Service) Current(ctx context.Context) (*Catalog, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var entries []Material
			if err := json.Unmarshal(raw, &entries); err == nil {
				return NewCatalog(entries), nil
			}
			s.logger.Warn("catalog cache decode failed, rebuilding")
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (s *Service) rebuild(ctx context.Context) (*Catalog, error) {
	entries := s.base.Materials()
	if s.repo != nil {
		overrides, err := s.repo.ListOverrides(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: list overrides: %w", err)
		}
		byID := make(map[string]PriceOverride, len(overrides))
		for _, o := range overrides {
			byID[o.MaterialID] = o
		}
		for i := range entries {
			if o, ok := byID[entries[i].ID]; ok {
				entries[i].PriceUSD = o.PriceUSD
				entries[i].PriceZWG = o.PriceZWG
				entries[i].UpdatedAt = o.UpdatedAt
			}
		}
	}
	cat := NewCatalog(entries)

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("catalog cache store failed", slog.Any("error", err))
			}
		}
	}
	return cat, nil
}

// UpdatePrice stores a new average price for a material and invalidates
// the cache. Returns the material with the new prices applied.
func (s *Service) UpdatePrice(ctx context.Context, materialID string, priceUSD, priceZWG float64) (Material, error) {
	m, ok := s.base.Lookup(materialID)
	if !ok {
		return Material{}, fmt.Errorf("catalog: unknown material %q", materialID)
	}
	if priceUSD < 0 || priceZWG < 0 {
		return Material{}, fmt.Errorf("catalog: negative price for %q", materialID)
	}
	if s.repo != nil {
		if err := s.repo.UpsertOverride(ctx, PriceOverride{MaterialID: materialID, PriceUSD: priceUSD, PriceZWG: priceZWG}); err != nil {
			return Material{}, fmt.Errorf("catalog: upsert override: %w", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("catalog cache invalidate failed", slog.Any("error", err))
		}
	}
	m.PriceUSD = priceUSD
	m.PriceZWG = priceZWG
	m.UpdatedAt = time.Now().UTC()
	return m, nil
}
