package discovery

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// Selection is a single-select facet value: either nothing or exactly one value
type Selection struct {
	value string
	set   bool
}

// Select returns a selection holding value
func Select(value string) Selection {
	return Selection{value: value, set: true}
}

// Value returns the selected value and whether one is set
func (s Selection) Value() (string, bool) {
	return s.value, s.set
}

// IsSet reports whether a value is selected
func (s Selection) IsSet() bool {
	return s.set
}

// Toggle selects value, or clears the selection when value is already selected
func (s Selection) Toggle(value string) Selection {
	if s.set && s.value == value {
		return Selection{}
	}
	return Select(value)
}

// Matches reports whether candidate satisfies the selection.
// An unset selection matches everything, including empty candidates.
func (s Selection) Matches(candidate string) bool {
	if !s.set {
		return true
	}
	return candidate != "" && candidate == s.value
}

// FilterState is the query a user builds on a discovery screen
type FilterState struct {
	TextQuery string
	Specialty Selection
	City      Selection
	RadiusKm  int
}

// NewFilterState returns the empty filter with the default radius
func NewFilterState(bounds RadiusBounds) FilterState {
	return FilterState{RadiusKm: bounds.DefaultKm}
}

// Matches reports whether a provider passes every active facet predicate
func (s FilterState) Matches(p *entities.Provider) bool {
	if p == nil {
		return false
	}
	return s.matchesText(p.Name) &&
		s.Specialty.Matches(p.Specialty) &&
		s.City.Matches(p.City)
}

func (s FilterState) matchesText(name string) bool {
	if s.TextQuery == "" {
		return true
	}
	if name == "" {
		return false
	}
	return strings.Contains(fold(name), fold(s.TextQuery))
}

// ToggleSpecialty applies select-again-to-clear to the specialty facet
func (s *FilterState) ToggleSpecialty(value string) {
	s.Specialty = s.Specialty.Toggle(value)
}

// ToggleCity applies select-again-to-clear to the city facet
func (s *FilterState) ToggleCity(value string) {
	s.City = s.City.Toggle(value)
}

// SetRadius stores radiusKm clamped to bounds
func (s *FilterState) SetRadius(radiusKm int, bounds RadiusBounds) {
	s.RadiusKm = bounds.Clamp(radiusKm)
}

// WidenRadius grows the radius by one step
func (s *FilterState) WidenRadius(bounds RadiusBounds) {
	s.SetRadius(s.RadiusKm+bounds.StepKm, bounds)
}

// NarrowRadius shrinks the radius by one step
func (s *FilterState) NarrowRadius(bounds RadiusBounds) {
	s.SetRadius(s.RadiusKm-bounds.StepKm, bounds)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
