package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/doctorfinder/internal/api/loaders"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// AppointmentService books and manages appointments
type AppointmentService interface {
	Book(ctx context.Context, appointment *entities.Appointment) error
	ListForPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)
	Cancel(ctx context.Context, id string) (*entities.Appointment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type appointmentView struct {
	*entities.Appointment
	ProviderName string `json:"provider_name,omitempty"`
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment entities.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.Book(r.Context(), &appointment); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListPatientAppointments handles GET /api/patients/{id}/appointments
func (h *AppointmentHandler) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListForPatient(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	views := make([]appointmentView, len(appointments))
	for i, appointment := range appointments {
		views[i] = appointmentView{Appointment: appointment}
	}

	if l := loaders.For(r.Context()); l != nil && len(appointments) > 0 {
		ids := make([]string, len(appointments))
		for i, appointment := range appointments {
			ids[i] = appointment.ProviderID
		}
		providers, errs := l.ProviderLoader.LoadMany(r.Context(), ids)()
		for i := range views {
			if i < len(errs) && errs[i] != nil {
				continue
			}
			if i < len(providers) && providers[i] != nil {
				views[i].ProviderName = providers[i].Name
			}
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": views,
		"count":        len(views),
	})
}

// CancelAppointment handles POST /api/appointments/{id}/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}
