package discovery

import (
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// FacetIndex lists the distinct values of a facet in first-occurrence order
type FacetIndex []string

// FacetAccessor extracts a facet value from a provider
type FacetAccessor func(p *entities.Provider) string

// CityOf is the accessor for the city facet
func CityOf(p *entities.Provider) string { return p.City }

// SpecialtyOf is the accessor for the specialty facet
func SpecialtyOf(p *entities.Provider) string { return p.Specialty }

// BuildFacetIndex collects the distinct non-empty values of a facet across the corpus.
// Providers with no value contribute nothing.
func BuildFacetIndex(corpus []*entities.Provider, accessor FacetAccessor) FacetIndex {
	values := make([]string, 0, len(corpus))
	for _, p := range corpus {
		if p == nil {
			continue
		}
		values = append(values, accessor(p))
	}
	return BuildFacetIndexFromValues(values)
}

// BuildFacetIndexFromValues deduplicates raw values, keeping the first occurrence
func BuildFacetIndexFromValues(values []string) FacetIndex {
	index := FacetIndex{}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		index = append(index, v)
	}
	return index
}

// CityIndex derives the city chips from the provider corpus
func CityIndex(corpus []*entities.Provider) FacetIndex {
	return BuildFacetIndex(corpus, CityOf)
}

// SpecialtyIndex derives the specialty chips from the provider corpus.
// Used only when no specialty catalogue is available.
func SpecialtyIndex(corpus []*entities.Provider) FacetIndex {
	return BuildFacetIndex(corpus, SpecialtyOf)
}

// SpecialtyIndexFromSource builds the specialty chips from the specialty catalogue
func SpecialtyIndexFromSource(specialties []*entities.Specialty) FacetIndex {
	names := make([]string, 0, len(specialties))
	for _, s := range specialties {
		if s == nil {
			continue
		}
		names = append(names, s.Name)
	}
	return BuildFacetIndexFromValues(names)
}

// Contains reports whether value is one of the indexed values
func (f FacetIndex) Contains(value string) bool {
	for _, v := range f {
		if v == value {
			return true
		}
	}
	return false
}
