// Package discovery filters and ranks an in-memory provider corpus for the
// map (radius) and list (faceted) search surfaces.
package discovery

import (
	"math"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between two coordinates in kilometers.
// Callers must check the coordinates first; no validation happens here.
func Distance(a, b entities.Location) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Latitude))*math.Cos(degreesToRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
