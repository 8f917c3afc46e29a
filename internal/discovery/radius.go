package discovery

import (
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// RadiusBounds configures the radius range offered to the user
type RadiusBounds struct {
	MinKm     int
	MaxKm     int
	DefaultKm int
	StepKm    int
}

// DefaultRadiusBounds returns 10..200 km with a 100 km start and 10 km steps
func DefaultRadiusBounds() RadiusBounds {
	return RadiusBounds{
		MinKm:     10,
		MaxKm:     200,
		DefaultKm: 100,
		StepKm:    10,
	}
}

// Clamp limits radiusKm to [MinKm, MaxKm]
func (b RadiusBounds) Clamp(radiusKm int) int {
	if radiusKm < b.MinKm {
		return b.MinKm
	}
	if radiusKm > b.MaxKm {
		return b.MaxKm
	}
	return radiusKm
}

// WithinRadius returns the distance from ref to the provider and whether it lies
// within radiusKm. Providers without a valid location never match.
func WithinRadius(ref entities.Location, radiusKm float64, p *entities.Provider) (float64, bool) {
	if !p.HasLocation() {
		return 0, false
	}
	d := Distance(ref, *p.Location)
	return d, d <= radiusKm
}
