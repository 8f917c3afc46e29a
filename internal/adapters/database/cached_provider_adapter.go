package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/providers"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
)

// providerByIDTTL is the lifetime of a cached profile, in seconds
const providerByIDTTL = 300

// CachedProviderAdapter caches single provider reads.
// List and GetByIDs always reach the underlying repository so every
// discovery session works on a freshly fetched corpus.
type CachedProviderAdapter struct {
	adapter repositories.ProviderRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedProviderAdapter creates a new cached provider adapter
func NewCachedProviderAdapter(adapter repositories.ProviderRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.ProviderRepository {
	return &CachedProviderAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// List passes through to the underlying repository
func (a *CachedProviderAdapter) List(ctx context.Context) ([]*entities.Provider, error) {
	return a.adapter.List(ctx)
}

// GetByIDs passes through to the underlying repository
func (a *CachedProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	return a.adapter.GetByIDs(ctx, ids)
}

// GetByID retrieves a provider by ID with caching
func (a *CachedProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	cacheKey := providers.GetProviderCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var provider entities.Provider
		if err := json.Unmarshal(cached, &provider); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "provider")
			return &provider, nil
		}
		log.Warn().Err(err).Str("provider_id", id).Msg("Failed to unmarshal cached provider")
	}
	observability.RecordCacheMiss(ctx, a.metrics, "provider")

	provider, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(provider)
	if err != nil {
		log.Warn().Err(err).Str("provider_id", id).Msg("Failed to marshal provider for cache")
		return provider, nil
	}
	if err := a.cache.Set(ctx, cacheKey, data, providerByIDTTL); err != nil {
		log.Warn().Err(err).Str("provider_id", id).Msg("Failed to cache provider")
	}

	return provider, nil
}
