package repositories

import (
	"context"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// ProviderRepository is the source of the discovery corpus
type ProviderRepository interface {
	// List returns every provider in stable corpus order
	List(ctx context.Context) ([]*entities.Provider, error)

	// GetByID retrieves a provider by ID
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// GetByIDs retrieves multiple providers by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error)
}

// ProviderSearchIndex keeps an external search index in sync with the corpus
type ProviderSearchIndex interface {
	// Index upserts a provider document
	Index(ctx context.Context, provider *entities.Provider) error

	// Delete removes a provider document
	Delete(ctx context.Context, id string) error
}

// SpecialtyRepository is the source of the specialty catalogue
type SpecialtyRepository interface {
	// List returns every specialty ordered by name
	List(ctx context.Context) ([]*entities.Specialty, error)
}
