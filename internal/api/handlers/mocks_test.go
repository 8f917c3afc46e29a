package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

type MockDiscoveryService struct {
	mock.Mock
}

func (m *MockDiscoveryService) Nearby(ctx context.Context, ref *entities.Location, radiusKm *int) discovery.SpatialView {
	args := m.Called(ctx, ref, radiusKm)
	return args.Get(0).(discovery.SpatialView)
}

func (m *MockDiscoveryService) Search(ctx context.Context, query services.SearchQuery) discovery.FacetedView {
	args := m.Called(ctx, query)
	return args.Get(0).(discovery.FacetedView)
}

func (m *MockDiscoveryService) Facets(ctx context.Context) discovery.Facets {
	args := m.Called(ctx)
	return args.Get(0).(discovery.Facets)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, id string) (*services.ProviderProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProviderProfile), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListForProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewService) Submit(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Book(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentService) ListForPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Cancel(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

// stubReviewCounter and stubProviderRepo back the request loaders
type stubReviewCounter struct {
	counts map[string]int
	calls  int
}

func (s *stubReviewCounter) CountsFor(_ context.Context, ids []string) (map[string]int, error) {
	s.calls++
	out := make(map[string]int, len(ids))
	for _, id := range ids {
		out[id] = s.counts[id]
	}
	return out, nil
}

type stubProviderRepo struct {
	providers map[string]*entities.Provider
}

func (s *stubProviderRepo) List(context.Context) ([]*entities.Provider, error) {
	out := make([]*entities.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProviderRepo) GetByID(_ context.Context, id string) (*entities.Provider, error) {
	if p, ok := s.providers[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("provider not found")
}

func (s *stubProviderRepo) GetByIDs(_ context.Context, ids []string) ([]*entities.Provider, error) {
	out := make([]*entities.Provider, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.providers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
