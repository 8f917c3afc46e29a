package discovery

import (
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// State is the lifecycle stage of a discovery session
type State int

const (
	// StateLoading means the corpus has not been delivered yet
	StateLoading State = iota
	// StateReady means every query is answered from the loaded corpus
	StateReady
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "loading"
	}
}

// Facets holds the chip values offered for each facet
type Facets struct {
	Specialties FacetIndex `json:"specialties"`
	Cities      FacetIndex `json:"cities"`
}

// SpatialView is the map screen output
type SpatialView struct {
	LocationAvailable bool               `json:"location_available"`
	Reference         *entities.Location `json:"reference,omitempty"`
	RadiusKm          int                `json:"radius_km"`
	Results           []SearchResult     `json:"results"`
	Count             int                `json:"count"`
}

// FacetedView is the list screen output
type FacetedView struct {
	Results []*entities.Provider `json:"results"`
	Count   int                  `json:"count"`
}

// Session holds the state of one discovery screen. Results are recomputed in
// full on every call; nothing is cached between calls.
// A Session is not safe for concurrent use.
type Session struct {
	state     State
	bounds    RadiusBounds
	corpus    []*entities.Provider
	facets    Facets
	filter    FilterState
	reference *entities.Location
}

// NewSession creates a session in the loading state
func NewSession(bounds RadiusBounds) *Session {
	return &Session{
		state:  StateLoading,
		bounds: bounds,
		filter: NewFilterState(bounds),
		facets: Facets{Specialties: FacetIndex{}, Cities: FacetIndex{}},
	}
}

// Load installs the corpus snapshot and rebuilds the facet indexes.
// A nil specialty catalogue falls back to the specialties seen in the corpus.
func (s *Session) Load(corpus []*entities.Provider, specialties []*entities.Specialty) {
	s.corpus = corpus
	s.facets.Cities = CityIndex(corpus)
	if specialties == nil {
		s.facets.Specialties = SpecialtyIndex(corpus)
	} else {
		s.facets.Specialties = SpecialtyIndexFromSource(specialties)
	}
	s.state = StateReady
}

// State returns the lifecycle stage
func (s *Session) State() State {
	return s.state
}

// Bounds returns the radius bounds the session clamps to
func (s *Session) Bounds() RadiusBounds {
	return s.bounds
}

// SetReference sets the user's location; nil or invalid coordinates mark it unavailable
func (s *Session) SetReference(loc *entities.Location) {
	if !loc.Valid() {
		s.reference = nil
		return
	}
	ref := *loc
	s.reference = &ref
}

// LocationAvailable reports whether radius queries can be answered
func (s *Session) LocationAvailable() bool {
	return s.reference != nil
}

// Filter returns a copy of the current filter state
func (s *Session) Filter() FilterState {
	return s.filter
}

// SetTextQuery replaces the name query
func (s *Session) SetTextQuery(q string) {
	s.filter.TextQuery = q
}

// ToggleSpecialty selects or clears a specialty
func (s *Session) ToggleSpecialty(value string) {
	s.filter.ToggleSpecialty(value)
}

// ToggleCity selects or clears a city
func (s *Session) ToggleCity(value string) {
	s.filter.ToggleCity(value)
}

// SetRadius sets the search radius, clamped to the session bounds
func (s *Session) SetRadius(radiusKm int) {
	s.filter.SetRadius(radiusKm, s.bounds)
}

// WidenRadius grows the radius by one step
func (s *Session) WidenRadius() {
	s.filter.WidenRadius(s.bounds)
}

// NarrowRadius shrinks the radius by one step
func (s *Session) NarrowRadius() {
	s.filter.NarrowRadius(s.bounds)
}

// Facets returns the chip values for the loaded corpus
func (s *Session) Facets() Facets {
	return s.facets
}

// Nearby answers the radius query around the reference location
func (s *Session) Nearby() SpatialView {
	view := SpatialView{
		LocationAvailable: s.reference != nil,
		RadiusKm:          s.filter.RadiusKm,
		Results:           []SearchResult{},
	}
	if s.reference == nil || s.state != StateReady {
		return view
	}

	ref := *s.reference
	view.Reference = &ref
	view.Results = ComposeSpatial(s.corpus, ref, float64(s.filter.RadiusKm))
	view.Count = len(view.Results)
	return view
}

// Search answers the faceted query
func (s *Session) Search() FacetedView {
	if s.state != StateReady {
		return FacetedView{Results: []*entities.Provider{}}
	}
	results := ComposeFaceted(s.corpus, s.filter)
	return FacetedView{Results: results, Count: len(results)}
}
