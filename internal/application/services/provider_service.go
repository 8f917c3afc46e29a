package services

import (
	"context"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
)

// ProviderProfile is a provider together with its review summary.
// Provider.Rating stays the stored rating; Reviews is computed separately.
type ProviderProfile struct {
	Provider *entities.Provider     `json:"provider"`
	Reviews  entities.ReviewSummary `json:"reviews"`
}

// ProviderService serves provider profiles
type ProviderService struct {
	providerRepo repositories.ProviderRepository
	reviewRepo   repositories.ReviewRepository
}

// NewProviderService creates a new provider service
func NewProviderService(providerRepo repositories.ProviderRepository, reviewRepo repositories.ReviewRepository) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
		reviewRepo:   reviewRepo,
	}
}

// GetProfile returns a provider and its review summary
func (s *ProviderService) GetProfile(ctx context.Context, id string) (*ProviderProfile, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviewRepo.SummaryByProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProviderProfile{Provider: provider, Reviews: *summary}, nil
}
