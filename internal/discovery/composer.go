package discovery

import (
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// SearchResult is a provider annotated with its distance from the reference location
type SearchResult struct {
	Provider   *entities.Provider `json:"provider"`
	DistanceKm float64            `json:"distance_km"`
}

// ComposeSpatial returns the providers within radiusKm of ref in corpus order.
// Text, specialty and city selections do not apply in this mode.
func ComposeSpatial(corpus []*entities.Provider, ref entities.Location, radiusKm float64) []SearchResult {
	results := []SearchResult{}
	for _, p := range corpus {
		d, ok := WithinRadius(ref, radiusKm, p)
		if !ok {
			continue
		}
		results = append(results, SearchResult{Provider: p, DistanceKm: d})
	}
	return results
}

// ComposeFaceted returns the providers passing the facet filter in corpus order.
// The radius is ignored in this mode.
func ComposeFaceted(corpus []*entities.Provider, state FilterState) []*entities.Provider {
	results := []*entities.Provider{}
	for _, p := range corpus {
		if state.Matches(p) {
			results = append(results, p)
		}
	}
	return results
}
