package repositories

import (
	"context"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create stores a new review
	Create(ctx context.Context, review *entities.Review) error

	// ListByProvider returns a provider's reviews, newest first
	ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error)

	// SummaryByProvider aggregates a provider's reviews
	SummaryByProvider(ctx context.Context, providerID string) (*entities.ReviewSummary, error)

	// CountByProviderIDs returns review counts keyed by provider ID.
	// Providers without reviews are absent from the map.
	CountByProviderIDs(ctx context.Context, providerIDs []string) (map[string]int, error)
}
