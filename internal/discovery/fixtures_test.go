package discovery

import (
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

func loc(lat, lon float64) *entities.Location {
	return &entities.Location{Latitude: lat, Longitude: lon}
}

func sampleCorpus() []*entities.Provider {
	return []*entities.Provider{
		{ID: "alice", Name: "Alice Smith", Specialty: "Cardiology", City: "Gaborone", Location: loc(-24.6, 25.9)},
		{ID: "bob", Name: "Bob Jones", Specialty: "Dermatology", City: "Francistown", Location: loc(-21.2, 27.5)},
	}
}

func ids(providers []*entities.Provider) []string {
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.ID)
	}
	return out
}

func resultIDs(results []SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Provider.ID)
	}
	return out
}
