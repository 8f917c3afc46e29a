package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/providers"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
)

// ReviewService handles provider reviews
type ReviewService struct {
	repo         repositories.ReviewRepository
	providerRepo repositories.ProviderRepository
	eventBus     providers.EventBus
	now          func() time.Time
}

// NewReviewService creates a new review service. eventBus may be nil.
func NewReviewService(repo repositories.ReviewRepository, providerRepo repositories.ProviderRepository, eventBus providers.EventBus) *ReviewService {
	return &ReviewService{
		repo:         repo,
		providerRepo: providerRepo,
		eventBus:     eventBus,
		now:          time.Now,
	}
}

// ListForProvider returns a provider's reviews, newest first
func (s *ReviewService) ListForProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.repo.ListByProvider(ctx, providerID)
}

// Submit validates and stores a review, then announces it on the event bus
func (s *ReviewService) Submit(ctx context.Context, review *entities.Review) error {
	if err := validateStruct(review); err != nil {
		return err
	}

	if _, err := s.providerRepo.GetByID(ctx, review.ProviderID); err != nil {
		return err
	}

	review.ID = uuid.New().String()
	review.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, review); err != nil {
		return err
	}

	if s.eventBus != nil {
		event := entities.NewProviderEvent(review.ProviderID, entities.ProviderEventTypeReviewSubmitted)
		if err := s.eventBus.Publish(ctx, providers.EventChannelProviderUpdates, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("provider_id", review.ProviderID).
				Msg("Failed to publish review event")
		}
	}

	return nil
}

// CountsFor returns review counts for the given providers, zero included
func (s *ReviewService) CountsFor(ctx context.Context, providerIDs []string) (map[string]int, error) {
	counts, err := s.repo.CountByProviderIDs(ctx, providerIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range providerIDs {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}
	return counts, nil
}
