package routes

import (
	"net/http"

	"github.com/zatekoja/doctorfinder/internal/api/handlers"
	"github.com/zatekoja/doctorfinder/internal/api/loaders"
	"github.com/zatekoja/doctorfinder/internal/api/middleware"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	discoveryHandler   *handlers.DiscoveryHandler
	providerHandler    *handlers.ProviderHandler
	appointmentHandler *handlers.AppointmentHandler

	reviewCounter  loaders.ReviewCounter
	providerRepo   repositories.ProviderRepository
	allowedOrigins []string
	metrics        *observability.Metrics
}

// Options carries the dependencies the router wires around the handlers
type Options struct {
	ReviewCounter  loaders.ReviewCounter
	ProviderRepo   repositories.ProviderRepository
	AllowedOrigins []string
	Metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	discoveryHandler *handlers.DiscoveryHandler,
	providerHandler *handlers.ProviderHandler,
	appointmentHandler *handlers.AppointmentHandler,
	opts Options,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		discoveryHandler:   discoveryHandler,
		providerHandler:    providerHandler,
		appointmentHandler: appointmentHandler,
		reviewCounter:      opts.ReviewCounter,
		providerRepo:       opts.ProviderRepo,
		allowedOrigins:     opts.AllowedOrigins,
		metrics:            opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Discovery. The literal segments win over {id}.
	r.mux.HandleFunc("GET /api/providers/nearby", r.discoveryHandler.Nearby)
	r.mux.HandleFunc("GET /api/providers/search", r.discoveryHandler.Search)
	r.mux.HandleFunc("GET /api/providers/facets", r.discoveryHandler.Facets)

	// Provider profile and reviews
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)
	r.mux.HandleFunc("GET /api/providers/{id}/reviews", r.providerHandler.ListReviews)
	r.mux.HandleFunc("POST /api/providers/{id}/reviews", r.providerHandler.SubmitReview)

	// Appointments
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment)
	r.mux.HandleFunc("GET /api/patients/{id}/appointments", r.appointmentHandler.ListPatientAppointments)

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability must sit directly above the mux chain without a request
	// copy in between, otherwise the matched pattern is not visible to it.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	if r.reviewCounter != nil && r.providerRepo != nil {
		handler = loaders.Middleware(r.reviewCounter, r.providerRepo)(handler)
	}

	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
