package entities

import "time"

// Review is a patient's rating and comment for a provider
type Review struct {
	ID          string    `json:"id" db:"id"`
	ProviderID  string    `json:"provider_id" db:"provider_id" validate:"required"`
	PatientID   string    `json:"patient_id" db:"patient_id" validate:"required"`
	PatientName string    `json:"patient_name,omitempty" db:"patient_name"`
	Rating      int       `json:"rating" db:"rating" validate:"min=1,max=5"`
	Comment     string    `json:"comment,omitempty" db:"comment" validate:"max=2000"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReviewSummary aggregates the reviews stored for a provider.
// It is reported alongside Provider.Rating and never replaces it.
type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
