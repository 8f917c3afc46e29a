package entities

// Specialty is one entry of the specialty catalogue used to populate filter chips
type Specialty struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
