package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

var (
	gaborone    = &entities.Location{Latitude: -24.6282, Longitude: 25.9231}
	francistown = &entities.Location{Latitude: -21.1700, Longitude: 27.5079}
)

func testCorpus() []*entities.Provider {
	return []*entities.Provider{
		{ID: "alice", Name: "Dr. Alice", Specialty: "Cardiology", City: "Gaborone", Location: gaborone, Rating: 4.8},
		{ID: "bob", Name: "Dr. Bob", Specialty: "Dermatology", City: "Francistown", Location: francistown},
		{ID: "carol", Name: "Dr. Carol", Specialty: "Cardiology", City: "Gaborone"},
	}
}

func providerIDs(providers []*entities.Provider) []string {
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	return ids
}

func newDiscoveryService(providerRepo *MockProviderRepository, specialtyRepo *MockSpecialtyRepository) *services.DiscoveryService {
	if specialtyRepo == nil {
		return services.NewDiscoveryService(providerRepo, nil, discovery.DefaultRadiusBounds(), time.Second, nil)
	}
	return services.NewDiscoveryService(providerRepo, specialtyRepo, discovery.DefaultRadiusBounds(), time.Second, nil)
}

func TestDiscoveryService_OpenSession(t *testing.T) {
	t.Run("loads corpus and specialty catalogue", func(t *testing.T) {
		providerRepo := new(MockProviderRepository)
		specialtyRepo := new(MockSpecialtyRepository)
		providerRepo.On("List", mock.Anything).Return(testCorpus(), nil)
		specialtyRepo.On("List", mock.Anything).Return([]*entities.Specialty{
			{ID: "s1", Name: "Cardiology"},
			{ID: "s2", Name: "Dermatology"},
			{ID: "s3", Name: "Pediatrics"},
		}, nil)

		session := newDiscoveryService(providerRepo, specialtyRepo).OpenSession(context.Background(), gaborone)

		assert.Equal(t, discovery.StateReady, session.State())
		assert.True(t, session.LocationAvailable())
		facets := session.Facets()
		assert.Equal(t, discovery.FacetIndex{"Cardiology", "Dermatology", "Pediatrics"}, facets.Specialties)
		assert.Equal(t, discovery.FacetIndex{"Gaborone", "Francistown"}, facets.Cities)
		providerRepo.AssertExpectations(t)
		specialtyRepo.AssertExpectations(t)
	})

	t.Run("corpus failure yields an empty ready session", func(t *testing.T) {
		providerRepo := new(MockProviderRepository)
		providerRepo.On("List", mock.Anything).Return(nil, errors.New("database down"))

		session := newDiscoveryService(providerRepo, nil).OpenSession(context.Background(), gaborone)

		assert.Equal(t, discovery.StateReady, session.State())
		assert.Empty(t, session.Search().Results)
		assert.Zero(t, session.Nearby().Count)
		assert.Empty(t, session.Facets().Cities)
	})

	t.Run("specialty failure falls back to the corpus", func(t *testing.T) {
		providerRepo := new(MockProviderRepository)
		specialtyRepo := new(MockSpecialtyRepository)
		providerRepo.On("List", mock.Anything).Return(testCorpus(), nil)
		specialtyRepo.On("List", mock.Anything).Return(nil, errors.New("timeout"))

		session := newDiscoveryService(providerRepo, specialtyRepo).OpenSession(context.Background(), nil)

		assert.Equal(t, discovery.FacetIndex{"Cardiology", "Dermatology"}, session.Facets().Specialties)
		assert.False(t, session.LocationAvailable())
	})
}

func TestDiscoveryService_Nearby(t *testing.T) {
	providerRepo := new(MockProviderRepository)
	providerRepo.On("List", mock.Anything).Return(testCorpus(), nil)
	svc := newDiscoveryService(providerRepo, nil)
	ctx := context.Background()

	t.Run("default radius", func(t *testing.T) {
		view := svc.Nearby(ctx, gaborone, nil)
		assert.True(t, view.LocationAvailable)
		assert.Equal(t, 100, view.RadiusKm)
		require.Len(t, view.Results, 1)
		assert.Equal(t, "alice", view.Results[0].Provider.ID)
		assert.InDelta(t, 0, view.Results[0].DistanceKm, 1e-6)
	})

	t.Run("radius is clamped", func(t *testing.T) {
		huge := 5000
		view := svc.Nearby(ctx, gaborone, &huge)
		assert.Equal(t, 200, view.RadiusKm)
		assert.Equal(t, 1, view.Count)
	})

	t.Run("no location", func(t *testing.T) {
		view := svc.Nearby(ctx, nil, nil)
		assert.False(t, view.LocationAvailable)
		assert.Empty(t, view.Results)
		assert.Zero(t, view.Count)
	})
}

func TestDiscoveryService_Search(t *testing.T) {
	providerRepo := new(MockProviderRepository)
	providerRepo.On("List", mock.Anything).Return(testCorpus(), nil)
	svc := newDiscoveryService(providerRepo, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		query services.SearchQuery
		want  []string
	}{
		{"everything", services.SearchQuery{}, []string{"alice", "bob", "carol"}},
		{"specialty", services.SearchQuery{Specialty: "Cardiology"}, []string{"alice", "carol"}},
		{"case-insensitive text", services.SearchQuery{Text: "BO"}, []string{"bob"}},
		{"text and city", services.SearchQuery{Text: "car", City: "Gaborone"}, []string{"carol"}},
		{"no match", services.SearchQuery{City: "Maun"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := svc.Search(ctx, tt.query)
			assert.Equal(t, tt.want, providerIDs(view.Results))
			assert.Equal(t, len(tt.want), view.Count)
		})
	}
}

func TestDiscoveryService_Facets(t *testing.T) {
	providerRepo := new(MockProviderRepository)
	providerRepo.On("List", mock.Anything).Return(testCorpus(), nil)

	facets := newDiscoveryService(providerRepo, nil).Facets(context.Background())
	assert.Equal(t, discovery.FacetIndex{"Cardiology", "Dermatology"}, facets.Specialties)
	assert.Equal(t, discovery.FacetIndex{"Gaborone", "Francistown"}, facets.Cities)
}
