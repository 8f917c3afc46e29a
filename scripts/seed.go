package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/adapters/search"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/observability"
	"github.com/zatekoja/doctorfinder/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS specialties (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS providers (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	specialty  TEXT NOT NULL DEFAULT '',
	city       TEXT,
	latitude   DOUBLE PRECISION,
	longitude  DOUBLE PRECISION,
	rating     DOUBLE PRECISION,
	photo_url  TEXT,
	phone      TEXT,
	email      TEXT,
	address    TEXT,
	about      TEXT,
	education  TEXT,
	experience TEXT
);

CREATE TABLE IF NOT EXISTS reviews (
	id           TEXT PRIMARY KEY,
	provider_id  TEXT NOT NULL REFERENCES providers(id),
	patient_id   TEXT NOT NULL,
	patient_name TEXT NOT NULL DEFAULT '',
	rating       INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS reviews_provider_id_idx ON reviews (provider_id, created_at DESC);

CREATE TABLE IF NOT EXISTS appointments (
	id                    TEXT PRIMARY KEY,
	provider_id           TEXT NOT NULL REFERENCES providers(id),
	patient_id            TEXT NOT NULL,
	patient_name          TEXT NOT NULL,
	appointment_date_time TIMESTAMPTZ NOT NULL,
	reason                TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS appointments_patient_id_idx ON appointments (patient_id, appointment_date_time DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("doctor-finder-seed", cfg.Env)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE appointments, reviews, providers, specialties CASCADE`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	db := goqu.New("postgres", pgClient.DB())

	specialties := []string{"Cardiology", "Dermatology", "General Practice", "Paediatrics", "Gynaecology", "Orthopaedics"}
	for _, name := range specialties {
		_, err := db.Insert("specialties").
			Rows(goqu.Record{"id": uuid.New().String(), "name": name}).
			OnConflict(goqu.DoNothing()).
			Executor().ExecContext(ctx)
		if err != nil {
			log.Error().Err(err).Str("specialty", name).Msg("Failed to seed specialty")
		}
	}

	seeded := make([]*entities.Provider, 0, len(seedProviders))
	for _, p := range seedProviders {
		record := goqu.Record{
			"id":         p.ID,
			"name":       p.Name,
			"specialty":  p.Specialty,
			"city":       nullable(p.City),
			"rating":     p.Rating,
			"phone":      nullable(p.Phone),
			"email":      nullable(p.Email),
			"address":    nullable(p.Address),
			"about":      nullable(p.About),
			"education":  nullable(p.Education),
			"experience": nullable(p.Experience),
		}
		if p.Location != nil {
			record["latitude"] = p.Location.Latitude
			record["longitude"] = p.Location.Longitude
		}

		_, err := db.Insert("providers").
			Rows(record).
			OnConflict(goqu.DoNothing()).
			Executor().ExecContext(ctx)
		if err != nil {
			log.Error().Err(err).Str("provider_id", p.ID).Msg("Failed to seed provider")
			continue
		}
		seeded = append(seeded, p)
	}

	log.Info().Int("specialties", len(specialties)).Int("providers", len(seeded)).Msg("Seeded database")

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, skipping search index")
		return
	}
	index := search.NewTypesenseAdapter(tsClient)
	if err := index.InitSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to init Typesense schema")
		return
	}
	indexed, err := index.IndexAll(ctx, seeded)
	if err != nil {
		log.Warn().Err(err).Msg("Indexing interrupted")
	}
	log.Info().Int("indexed", indexed).Msg("Indexed seeded providers")
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

var seedProviders = []*entities.Provider{
	{
		ID: "dr-alice-mokoena", Name: "Dr. Alice Mokoena", Specialty: "Cardiology", City: "Gaborone",
		Location: &entities.Location{Latitude: -24.6282, Longitude: 25.9231}, Rating: 4.8,
		Phone: "+267 390 1234", Address: "Plot 1124, Main Mall", Education: "MBChB, University of Cape Town",
		Experience: "12 years", About: "Interventional cardiologist focusing on preventive care.",
	},
	{
		ID: "dr-bob-kgosi", Name: "Dr. Bob Kgosi", Specialty: "Dermatology", City: "Francistown",
		Location: &entities.Location{Latitude: -21.1661, Longitude: 27.5144}, Rating: 4.3,
		Phone: "+267 241 5678", Experience: "8 years",
	},
	{
		ID: "dr-chipo-ndlovu", Name: "Dr. Chipo Ndlovu", Specialty: "Paediatrics", City: "Gaborone",
		Location: &entities.Location{Latitude: -24.6541, Longitude: 25.9087}, Rating: 4.9,
		Email: "chipo.ndlovu@example.com", Experience: "15 years",
	},
	{
		ID: "dr-david-sello", Name: "Dr. David Sello", Specialty: "General Practice", City: "Maun",
		Location: &entities.Location{Latitude: -19.9833, Longitude: 23.4167}, Rating: 4.1,
	},
	{
		// No coordinates: listed in search, never on the map
		ID: "dr-esther-molefe", Name: "Dr. Esther Molefe", Specialty: "Gynaecology", City: "Lobatse",
		Rating: 4.6,
	},
	{
		ID: "dr-frank-tau", Name: "Dr. Frank Tau", Specialty: "Orthopaedics",
		Location: &entities.Location{Latitude: -22.3875, Longitude: 26.7108}, Rating: 3.9,
	},
}
