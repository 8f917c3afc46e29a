package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked visit with a provider
type Appointment struct {
	ID                  string            `json:"id" db:"id"`
	ProviderID          string            `json:"provider_id" db:"provider_id" validate:"required"`
	PatientID           string            `json:"patient_id" db:"patient_id" validate:"required"`
	PatientName         string            `json:"patient_name" db:"patient_name" validate:"required,max=200"`
	AppointmentDateTime time.Time         `json:"appointment_date_time" db:"appointment_date_time" validate:"required"`
	Reason              string            `json:"reason,omitempty" db:"reason" validate:"max=1000"`
	Status              AppointmentStatus `json:"status" db:"status"`
	CreatedAt           time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at" db:"updated_at"`
}
