package services

import (
	"context"
	"time"

	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// SearchQuery carries the faceted filters of a list search.
// Empty strings leave the matching facet unset.
type SearchQuery struct {
	Text      string
	Specialty string
	City      string
}

// DiscoveryService opens discovery sessions over a freshly fetched corpus
type DiscoveryService struct {
	providerRepo  repositories.ProviderRepository
	specialtyRepo repositories.SpecialtyRepository
	bounds        discovery.RadiusBounds
	fetchTimeout  time.Duration
	metrics       *observability.Metrics
}

// NewDiscoveryService creates a new discovery service. specialtyRepo may be
// nil, in which case specialty chips come from the corpus.
func NewDiscoveryService(
	providerRepo repositories.ProviderRepository,
	specialtyRepo repositories.SpecialtyRepository,
	bounds discovery.RadiusBounds,
	fetchTimeout time.Duration,
	metrics *observability.Metrics,
) *DiscoveryService {
	return &DiscoveryService{
		providerRepo:  providerRepo,
		specialtyRepo: specialtyRepo,
		bounds:        bounds,
		fetchTimeout:  fetchTimeout,
		metrics:       metrics,
	}
}

// Bounds returns the radius bounds sessions are clamped to
func (s *DiscoveryService) Bounds() discovery.RadiusBounds {
	return s.bounds
}

// OpenSession fetches the corpus and specialty catalogue and returns a Ready
// session. A failed corpus fetch is logged and yields an empty corpus.
func (s *DiscoveryService) OpenSession(ctx context.Context, ref *entities.Location) *discovery.Session {
	ctx, span := observability.StartSpan(ctx, "DiscoveryService.OpenSession")
	defer span.End()
	start := time.Now()

	session := discovery.NewSession(s.bounds)
	session.SetReference(ref)

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	logger := observability.LoggerFromContext(ctx)

	corpus, err := s.providerRepo.List(fetchCtx)
	if err != nil {
		observability.RecordError(span, err)
		logger.Error().Err(err).Msg("Failed to fetch provider corpus, continuing with an empty corpus")
		corpus = []*entities.Provider{}
	}

	var specialties []*entities.Specialty
	if s.specialtyRepo != nil {
		specialties, err = s.specialtyRepo.List(fetchCtx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch specialty catalogue, deriving specialties from the corpus")
			specialties = nil
		}
	}

	session.Load(corpus, specialties)

	observability.SetSpanAttributes(span,
		attribute.Int("discovery.corpus_size", len(corpus)),
		attribute.Bool("discovery.location_available", session.LocationAvailable()),
	)
	observability.RecordDiscoveryDuration(ctx, s.metrics, time.Since(start))

	return session
}

// Nearby answers a radius query. A nil radius uses the default radius.
func (s *DiscoveryService) Nearby(ctx context.Context, ref *entities.Location, radiusKm *int) discovery.SpatialView {
	session := s.OpenSession(ctx, ref)
	if radiusKm != nil {
		session.SetRadius(*radiusKm)
	}

	view := session.Nearby()
	observability.RecordDiscoveryResults(ctx, s.metrics, "spatial", view.Count)
	return view
}

// Search answers a faceted list query
func (s *DiscoveryService) Search(ctx context.Context, query SearchQuery) discovery.FacetedView {
	session := s.OpenSession(ctx, nil)
	session.SetTextQuery(query.Text)
	if query.Specialty != "" {
		session.ToggleSpecialty(query.Specialty)
	}
	if query.City != "" {
		session.ToggleCity(query.City)
	}

	view := session.Search()
	observability.RecordDiscoveryResults(ctx, s.metrics, "faceted", view.Count)
	return view
}

// Facets returns the chip values for the current corpus
func (s *DiscoveryService) Facets(ctx context.Context) discovery.Facets {
	return s.OpenSession(ctx, nil).Facets()
}
