package entities

import "math"

// Provider represents a discoverable medical professional
type Provider struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Specialty  string    `json:"specialty" db:"specialty"`
	City       string    `json:"city,omitempty" db:"city"`
	Location   *Location `json:"location,omitempty" db:"-"`
	Rating     float64   `json:"rating" db:"rating"`
	PhotoURL   string    `json:"photo_url,omitempty" db:"photo_url"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Email      string    `json:"email,omitempty" db:"email"`
	Address    string    `json:"address,omitempty" db:"address"`
	About      string    `json:"about,omitempty" db:"about"`
	Education  string    `json:"education,omitempty" db:"education"`
	Experience string    `json:"experience,omitempty" db:"experience"`
}

// Location represents geographical coordinates in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Valid reports whether the coordinates are inside the WGS84 ranges.
// A nil location is never valid.
func (l *Location) Valid() bool {
	if l == nil {
		return false
	}
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// HasLocation reports whether the provider can take part in radius queries
func (p *Provider) HasLocation() bool {
	return p != nil && p.Location.Valid()
}
