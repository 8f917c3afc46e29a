package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// ProfileService serves provider profiles
type ProfileService interface {
	GetProfile(ctx context.Context, id string) (*services.ProviderProfile, error)
}

// ReviewService reads and writes provider reviews
type ReviewService interface {
	ListForProvider(ctx context.Context, providerID string) ([]*entities.Review, error)
	Submit(ctx context.Context, review *entities.Review) error
}

// ProviderHandler handles provider profile and review requests
type ProviderHandler struct {
	profiles ProfileService
	reviews  ReviewService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(profiles ProfileService, reviews ReviewService) *ProviderHandler {
	return &ProviderHandler{
		profiles: profiles,
		reviews:  reviews,
	}
}

// GetProvider handles GET /api/providers/{id}
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// ListReviews handles GET /api/providers/{id}/reviews
func (h *ProviderHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListForProvider(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

type submitReviewRequest struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// SubmitReview handles POST /api/providers/{id}/reviews
func (h *ProviderHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	review := &entities.Review{
		ProviderID:  r.PathValue("id"),
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := h.reviews.Submit(r.Context(), review); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}
