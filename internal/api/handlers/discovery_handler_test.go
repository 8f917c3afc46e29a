package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/doctorfinder/internal/api/handlers"
	"github.com/zatekoja/doctorfinder/internal/api/loaders"
	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

var (
	alice = &entities.Provider{ID: "alice", Name: "Dr. Alice", Specialty: "Cardiology", City: "Gaborone", Rating: 4.5}
	bob   = &entities.Provider{ID: "bob", Name: "Dr. Bob", Specialty: "Dermatology", City: "Francistown", Rating: 4.0}
)

func withLoaders(req *http.Request, counts map[string]int) *http.Request {
	l := loaders.NewLoaders(&stubReviewCounter{counts: counts}, &stubProviderRepo{})
	return req.WithContext(loaders.WithLoaders(req.Context(), l))
}

func TestDiscoveryHandler_Nearby(t *testing.T) {
	t.Run("returns results with distance and review counts", func(t *testing.T) {
		svc := new(MockDiscoveryService)
		handler := handlers.NewDiscoveryHandler(svc)

		ref := &entities.Location{Latitude: -24.65, Longitude: 25.91}
		svc.On("Nearby", mock.Anything, ref, mock.MatchedBy(func(r *int) bool {
			return r != nil && *r == 50
		})).Return(discovery.SpatialView{
			LocationAvailable: true,
			Reference:         ref,
			RadiusKm:          50,
			Results:           []discovery.SearchResult{{Provider: alice, DistanceKm: 1.5}},
			Count:             1,
		})

		req := httptest.NewRequest("GET", "/api/providers/nearby?lat=-24.65&lon=25.91&radius_km=50", nil)
		req = withLoaders(req, map[string]int{"alice": 3})
		w := httptest.NewRecorder()

		handler.Nearby(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			LocationAvailable bool `json:"location_available"`
			RadiusKm          int  `json:"radius_km"`
			Count             int  `json:"count"`
			Results           []struct {
				Provider    entities.Provider `json:"provider"`
				DistanceKm  float64           `json:"distance_km"`
				ReviewCount int               `json:"review_count"`
			} `json:"results"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.True(t, body.LocationAvailable)
		assert.Equal(t, 50, body.RadiusKm)
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Results, 1)
		assert.Equal(t, "alice", body.Results[0].Provider.ID)
		assert.InDelta(t, 1.5, body.Results[0].DistanceKm, 1e-9)
		assert.Equal(t, 3, body.Results[0].ReviewCount)
		svc.AssertExpectations(t)
	})

	t.Run("missing coordinates pass a nil reference", func(t *testing.T) {
		svc := new(MockDiscoveryService)
		handler := handlers.NewDiscoveryHandler(svc)

		svc.On("Nearby", mock.Anything, (*entities.Location)(nil), (*int)(nil)).Return(discovery.SpatialView{
			RadiusKm: 100,
			Results:  []discovery.SearchResult{},
		})

		req := httptest.NewRequest("GET", "/api/providers/nearby", nil)
		w := httptest.NewRecorder()

		handler.Nearby(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"location_available":false`)
		assert.Contains(t, w.Body.String(), `"results":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("out of range latitude is treated as unavailable", func(t *testing.T) {
		svc := new(MockDiscoveryService)
		handler := handlers.NewDiscoveryHandler(svc)

		svc.On("Nearby", mock.Anything, (*entities.Location)(nil), (*int)(nil)).Return(discovery.SpatialView{
			RadiusKm: 100,
			Results:  []discovery.SearchResult{},
		})

		req := httptest.NewRequest("GET", "/api/providers/nearby?lat=120&lon=25", nil)
		w := httptest.NewRecorder()

		handler.Nearby(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a non-integer radius", func(t *testing.T) {
		svc := new(MockDiscoveryService)
		handler := handlers.NewDiscoveryHandler(svc)

		req := httptest.NewRequest("GET", "/api/providers/nearby?lat=1&lon=1&radius_km=far", nil)
		w := httptest.NewRecorder()

		handler.Nearby(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDiscoveryHandler_Search(t *testing.T) {
	svc := new(MockDiscoveryService)
	handler := handlers.NewDiscoveryHandler(svc)

	svc.On("Search", mock.Anything, services.SearchQuery{Text: "dr", Specialty: "Cardiology", City: ""}).
		Return(discovery.FacetedView{Results: []*entities.Provider{alice}, Count: 1})

	req := httptest.NewRequest("GET", "/api/providers/search?q=dr&specialty=Cardiology", nil)
	req = withLoaders(req, map[string]int{"alice": 2})
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			Provider    entities.Provider `json:"provider"`
			ReviewCount int               `json:"review_count"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Dr. Alice", body.Results[0].Provider.Name)
	assert.Equal(t, 2, body.Results[0].ReviewCount)
	svc.AssertExpectations(t)
}

func TestDiscoveryHandler_Search_WithoutLoaders(t *testing.T) {
	svc := new(MockDiscoveryService)
	handler := handlers.NewDiscoveryHandler(svc)

	svc.On("Search", mock.Anything, services.SearchQuery{}).
		Return(discovery.FacetedView{Results: []*entities.Provider{alice, bob}, Count: 2})

	req := httptest.NewRequest("GET", "/api/providers/search", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"review_count":0`)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestDiscoveryHandler_Facets(t *testing.T) {
	svc := new(MockDiscoveryService)
	handler := handlers.NewDiscoveryHandler(svc)

	svc.On("Facets", mock.Anything).Return(discovery.Facets{
		Specialties: discovery.FacetIndex{"Cardiology", "Dermatology"},
		Cities:      discovery.FacetIndex{"Gaborone", "Francistown"},
	})

	req := httptest.NewRequest("GET", "/api/providers/facets", nil)
	w := httptest.NewRecorder()

	handler.Facets(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body discovery.Facets
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, discovery.FacetIndex{"Cardiology", "Dermatology"}, body.Specialties)
	assert.Equal(t, discovery.FacetIndex{"Gaborone", "Francistown"}, body.Cities)
}
