package search

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	tsclient "github.com/zatekoja/doctorfinder/internal/infrastructure/clients/typesense"
)

type documentWriter interface {
	InitSchema(ctx context.Context) error
	UpsertDocument(ctx context.Context, document map[string]interface{}) error
	DeleteDocument(ctx context.Context, id string) error
}

// TypesenseAdapter exports providers to the Typesense providers collection
type TypesenseAdapter struct {
	client documentWriter
	now    func() time.Time
}

var _ repositories.ProviderSearchIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client, now: time.Now}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts a provider document
func (a *TypesenseAdapter) Index(ctx context.Context, provider *entities.Provider) error {
	if err := a.client.UpsertDocument(ctx, buildProviderDocument(provider, a.now())); err != nil {
		return fmt.Errorf("failed to index provider %s: %w", provider.ID, err)
	}
	return nil
}

// Delete removes a provider from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if err := a.client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete provider %s from index: %w", id, err)
	}
	return nil
}

// IndexAll upserts every provider and returns how many were written.
// Failures are logged and skipped so one bad document does not stop the run.
func (a *TypesenseAdapter) IndexAll(ctx context.Context, providers []*entities.Provider) (int, error) {
	indexed := 0
	for _, provider := range providers {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if provider == nil {
			continue
		}
		if err := a.Index(ctx, provider); err != nil {
			log.Warn().Err(err).Str("provider_id", provider.ID).Msg("Skipping provider")
			continue
		}
		indexed++
	}
	return indexed, nil
}

// buildProviderDocument omits empty facets and the geopoint of providers
// without a valid location; the collection marks those fields optional.
func buildProviderDocument(provider *entities.Provider, indexedAt time.Time) map[string]interface{} {
	document := map[string]interface{}{
		"id":         provider.ID,
		"name":       provider.Name,
		"rating":     provider.Rating,
		"indexed_at": indexedAt.Unix(),
	}
	if provider.Specialty != "" {
		document["specialty"] = provider.Specialty
	}
	if provider.City != "" {
		document["city"] = provider.City
	}
	if provider.HasLocation() {
		document["location"] = []float64{provider.Location.Latitude, provider.Location.Longitude}
	}
	return document
}
