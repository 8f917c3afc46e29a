package loaders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// ReviewCounter returns review counts keyed by provider ID
type ReviewCounter interface {
	CountsFor(ctx context.Context, providerIDs []string) (map[string]int, error)
}

// Loaders batches per-request lookups made while rendering result lists
type Loaders struct {
	ReviewCountLoader *dataloader.Loader[string, int]
	ProviderLoader    *dataloader.Loader[string, *entities.Provider]
}

// NewLoaders creates a fresh set of loaders. Loaders cache results, so a
// set must not outlive the request it was created for.
func NewLoaders(reviews ReviewCounter, providerRepo repositories.ProviderRepository) *Loaders {
	return &Loaders{
		ReviewCountLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[int] {
			results := make([]*dataloader.Result[int], len(keys))
			counts, err := reviews.CountsFor(ctx, keys)
			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[int]{Error: err}
					continue
				}
				results[i] = &dataloader.Result[int]{Data: counts[key]}
			}
			return results
		}),
		ProviderLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Provider] {
			results := make([]*dataloader.Result[*entities.Provider], len(keys))
			providers, err := providerRepo.GetByIDs(ctx, keys)

			byID := make(map[string]*entities.Provider, len(providers))
			if err == nil {
				for _, p := range providers {
					byID[p.ID] = p
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Provider]{Error: err}
				} else if p, ok := byID[key]; ok {
					results[i] = &dataloader.Result[*entities.Provider]{Data: p}
				} else {
					results[i] = &dataloader.Result[*entities.Provider]{Error: fmt.Errorf("provider %s not found", key)}
				}
			}
			return results
		}),
	}
}

// For returns the loaders attached to ctx, or nil
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// Middleware attaches a fresh set of loaders to every request
func Middleware(reviews ReviewCounter, providerRepo repositories.ProviderRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(reviews, providerRepo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReviewCounts loads review counts for ids in one batch. Missing loaders or
// a failed batch yield zero counts.
func ReviewCounts(ctx context.Context, ids []string) []int {
	counts := make([]int, len(ids))
	l := For(ctx)
	if l == nil || len(ids) == 0 {
		return counts
	}

	values, errs := l.ReviewCountLoader.LoadMany(ctx, ids)()
	for i := range ids {
		if i < len(errs) && errs[i] != nil {
			continue
		}
		if i < len(values) {
			counts[i] = values[i]
		}
	}
	return counts
}
