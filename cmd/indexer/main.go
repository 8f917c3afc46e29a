package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/adapters/database"
	"github.com/zatekoja/doctorfinder/internal/adapters/documentstore"
	"github.com/zatekoja/doctorfinder/internal/adapters/search"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/dynamodb"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
	"github.com/zatekoja/doctorfinder/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the providers collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	corpus, closeCorpus, err := openCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCorpus()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		if err := tsClient.DropCollection(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to delete providers collection")
		}
	}

	index := search.NewTypesenseAdapter(tsClient)
	if err := index.InitSchema(ctx); err != nil {
		return err
	}

	providers, err := corpus.List(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("providers", len(providers)).Str("corpus_store", cfg.CorpusStore).Msg("Indexing providers")

	indexed, err := index.IndexAll(ctx, providers)
	if err != nil {
		return err
	}

	log.Info().Int("indexed", indexed).Int("skipped", len(providers)-indexed).Msg("Indexing finished")
	return nil
}

func openCorpus(ctx context.Context, cfg *config.Config) (repositories.ProviderRepository, func(), error) {
	if cfg.CorpusStore == config.CorpusStoreDynamoDB {
		client, err := dynamodb.NewClient(ctx, &cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		return documentstore.NewDynamoProviderAdapter(client, cfg.DynamoDB.ProvidersTable), func() {}, nil
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return database.NewProviderAdapter(pgClient), func() { pgClient.Close() }, nil
}
