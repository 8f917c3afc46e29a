package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/doctorfinder/internal/api/loaders"
	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// DiscoveryService answers map and list queries
type DiscoveryService interface {
	Nearby(ctx context.Context, ref *entities.Location, radiusKm *int) discovery.SpatialView
	Search(ctx context.Context, query services.SearchQuery) discovery.FacetedView
	Facets(ctx context.Context) discovery.Facets
}

// DiscoveryHandler handles provider discovery requests
type DiscoveryHandler struct {
	service DiscoveryService
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(service DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

type nearbyResult struct {
	Provider    *entities.Provider `json:"provider"`
	DistanceKm  float64            `json:"distance_km"`
	ReviewCount int                `json:"review_count"`
}

type nearbyResponse struct {
	LocationAvailable bool               `json:"location_available"`
	Reference         *entities.Location `json:"reference,omitempty"`
	RadiusKm          int                `json:"radius_km"`
	Results           []nearbyResult     `json:"results"`
	Count             int                `json:"count"`
}

type providerResult struct {
	Provider    *entities.Provider `json:"provider"`
	ReviewCount int                `json:"review_count"`
}

type searchResponse struct {
	Results []providerResult `json:"results"`
	Count   int              `json:"count"`
}

// Nearby handles GET /api/providers/nearby?lat=&lon=&radius_km=
func (h *DiscoveryHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var radiusKm *int
	if raw := query.Get("radius_km"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			respondWithAppError(w, r, apperrors.NewValidationError("radius_km must be an integer"))
			return
		}
		radiusKm = &radius
	}

	view := h.service.Nearby(r.Context(), parseReference(query.Get("lat"), query.Get("lon")), radiusKm)

	ids := make([]string, len(view.Results))
	for i, result := range view.Results {
		ids[i] = result.Provider.ID
	}
	counts := loaders.ReviewCounts(r.Context(), ids)

	results := make([]nearbyResult, len(view.Results))
	for i, result := range view.Results {
		results[i] = nearbyResult{
			Provider:    result.Provider,
			DistanceKm:  result.DistanceKm,
			ReviewCount: counts[i],
		}
	}

	respondWithJSON(w, http.StatusOK, nearbyResponse{
		LocationAvailable: view.LocationAvailable,
		Reference:         view.Reference,
		RadiusKm:          view.RadiusKm,
		Results:           results,
		Count:             view.Count,
	})
}

// Search handles GET /api/providers/search?q=&specialty=&city=
func (h *DiscoveryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view := h.service.Search(r.Context(), services.SearchQuery{
		Text:      query.Get("q"),
		Specialty: query.Get("specialty"),
		City:      query.Get("city"),
	})

	respondWithJSON(w, http.StatusOK, searchResponse{
		Results: withReviewCounts(r.Context(), view.Results),
		Count:   view.Count,
	})
}

// Facets handles GET /api/providers/facets
func (h *DiscoveryHandler) Facets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Facets(r.Context()))
}

func withReviewCounts(ctx context.Context, providers []*entities.Provider) []providerResult {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	counts := loaders.ReviewCounts(ctx, ids)

	results := make([]providerResult, len(providers))
	for i, p := range providers {
		results[i] = providerResult{Provider: p, ReviewCount: counts[i]}
	}
	return results
}

// parseReference returns nil unless both coordinates parse and are in range
func parseReference(lat, lon string) *entities.Location {
	if lat == "" || lon == "" {
		return nil
	}
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil
	}

	ref := &entities.Location{Latitude: latitude, Longitude: longitude}
	if !ref.Valid() {
		return nil
	}
	return ref
}
