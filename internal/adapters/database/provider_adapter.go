package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

const providersTable = "providers"

var providerColumns = []interface{}{
	"id", "name", "specialty", "city", "latitude", "longitude", "rating",
	"photo_url", "phone", "email", "address", "about", "education", "experience",
}

// ProviderAdapter implements the ProviderRepository interface on Postgres
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) repositories.ProviderRepository {
	return &ProviderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns every provider ordered by ID
func (a *ProviderAdapter) List(ctx context.Context) ([]*entities.Provider, error) {
	query, args, err := a.db.Select(providerColumns...).
		From(providersTable).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args)
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	query, args, err := a.db.Select(providerColumns...).
		From(providersTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	provider, err := scanProvider(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}

	return provider, nil
}

// GetByIDs retrieves multiple providers by their IDs
func (a *ProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	if len(ids) == 0 {
		return []*entities.Provider{}, nil
	}

	query, args, err := a.db.Select(providerColumns...).
		From(providersTable).
		Where(goqu.Ex{"id": ids}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args)
}

func (a *ProviderAdapter) queryProviders(ctx context.Context, query string, args []interface{}) ([]*entities.Provider, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	providers := make([]*entities.Provider, 0)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate providers", err)
	}

	return providers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProvider maps nullable columns onto absent optional fields.
// The location is only set when both coordinates are present.
func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	var (
		specialty, city, photoURL, phone, email sql.NullString
		address, about, education, experience  sql.NullString
		latitude, longitude, rating            sql.NullFloat64
	)

	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&specialty,
		&city,
		&latitude,
		&longitude,
		&rating,
		&photoURL,
		&phone,
		&email,
		&address,
		&about,
		&education,
		&experience,
	)
	if err != nil {
		return nil, err
	}

	provider.Specialty = specialty.String
	provider.City = city.String
	provider.Rating = rating.Float64
	provider.PhotoURL = photoURL.String
	provider.Phone = phone.String
	provider.Email = email.String
	provider.Address = address.String
	provider.About = about.String
	provider.Education = education.String
	provider.Experience = experience.String
	if latitude.Valid && longitude.Valid {
		provider.Location = &entities.Location{
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
		}
	}

	return provider, nil
}
