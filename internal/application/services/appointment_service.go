package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// AppointmentService handles appointment booking logic
type AppointmentService struct {
	repo         repositories.AppointmentRepository
	providerRepo repositories.ProviderRepository
	now          func() time.Time
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, providerRepo repositories.ProviderRepository) *AppointmentService {
	return &AppointmentService{
		repo:         repo,
		providerRepo: providerRepo,
		now:          time.Now,
	}
}

// Book validates and stores a pending appointment
func (s *AppointmentService) Book(ctx context.Context, appointment *entities.Appointment) error {
	if err := validateStruct(appointment); err != nil {
		return err
	}

	now := s.now().UTC()
	if !appointment.AppointmentDateTime.After(now) {
		return apperrors.NewValidationError("appointment_date_time must be in the future")
	}

	if _, err := s.providerRepo.GetByID(ctx, appointment.ProviderID); err != nil {
		return err
	}

	appointment.ID = uuid.New().String()
	appointment.Status = entities.AppointmentStatusPending
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if err := s.repo.Create(ctx, appointment); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("provider_id", appointment.ProviderID).
		Msg("Appointment booked")
	return nil
}

// ListForPatient returns a patient's appointments, newest first
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	if patientID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}
	return s.repo.ListByPatient(ctx, patientID)
}

// Cancel marks an appointment as cancelled
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == entities.AppointmentStatusCancelled {
		return nil, apperrors.NewConflictError(fmt.Sprintf("appointment %s is already cancelled", id))
	}

	if err := s.repo.UpdateStatus(ctx, id, entities.AppointmentStatusCancelled); err != nil {
		return nil, err
	}

	appointment.Status = entities.AppointmentStatusCancelled
	appointment.UpdatedAt = s.now().UTC()
	return appointment, nil
}
