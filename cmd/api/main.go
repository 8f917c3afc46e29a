package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/adapters/cache"
	"github.com/zatekoja/doctorfinder/internal/adapters/database"
	"github.com/zatekoja/doctorfinder/internal/adapters/documentstore"
	"github.com/zatekoja/doctorfinder/internal/adapters/events"
	"github.com/zatekoja/doctorfinder/internal/api/handlers"
	"github.com/zatekoja/doctorfinder/internal/api/routes"
	"github.com/zatekoja/doctorfinder/internal/application/services"
	"github.com/zatekoja/doctorfinder/internal/discovery"
	"github.com/zatekoja/doctorfinder/internal/domain/providers"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/dynamodb"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/redis"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
	"github.com/zatekoja/doctorfinder/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Reviews, appointments and the specialty catalogue always live in Postgres
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	var baseProviderRepo repositories.ProviderRepository
	switch cfg.CorpusStore {
	case config.CorpusStoreDynamoDB:
		dynamoClient, err := dynamodb.NewClient(ctx, &cfg.DynamoDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize DynamoDB client")
		}
		baseProviderRepo = documentstore.NewDynamoProviderAdapter(dynamoClient, cfg.DynamoDB.ProvidersTable)
		log.Info().Str("table", cfg.DynamoDB.ProvidersTable).Msg("Provider corpus served from DynamoDB")
	default:
		baseProviderRepo = database.NewProviderAdapter(pgClient)
		log.Info().Msg("Provider corpus served from PostgreSQL")
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			// The service works without caching
			log.Warn().Err(err).Msg("Redis unavailable, running without cache and events")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			defer eventBus.Close()
		}
	}

	providerRepo := baseProviderRepo
	if cacheProvider != nil {
		providerRepo = database.NewCachedProviderAdapter(baseProviderRepo, cacheProvider, metrics)
	}

	var invalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation")
			invalidation = nil
		}
	}

	specialtyRepo := database.NewSpecialtyAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)

	bounds := discovery.RadiusBounds{
		MinKm:     cfg.Discovery.MinRadiusKm,
		MaxKm:     cfg.Discovery.MaxRadiusKm,
		DefaultKm: cfg.Discovery.DefaultRadiusKm,
		StepKm:    cfg.Discovery.RadiusStepKm,
	}

	// The corpus always comes from the uncached store so each session sees fresh data
	discoveryService := services.NewDiscoveryService(baseProviderRepo, specialtyRepo, bounds, cfg.Discovery.FetchTimeout, metrics)
	providerService := services.NewProviderService(providerRepo, reviewRepo)
	reviewService := services.NewReviewService(reviewRepo, providerRepo, eventBus)
	appointmentService := services.NewAppointmentService(appointmentRepo, providerRepo)

	router := routes.NewRouter(
		handlers.NewDiscoveryHandler(discoveryService),
		handlers.NewProviderHandler(providerService, reviewService),
		handlers.NewAppointmentHandler(appointmentService),
		routes.Options{
			ReviewCounter:  reviewService,
			ProviderRepo:   providerRepo,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Metrics:        metrics,
		},
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("corpus_store", cfg.CorpusStore).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	if invalidation != nil {
		invalidation.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
