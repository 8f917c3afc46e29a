package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// SpecialtyAdapter implements the SpecialtyRepository interface
type SpecialtyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSpecialtyAdapter creates a new specialty adapter
func NewSpecialtyAdapter(client *postgres.Client) repositories.SpecialtyRepository {
	return &SpecialtyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List returns the specialty catalogue ordered by name
func (a *SpecialtyAdapter) List(ctx context.Context) ([]*entities.Specialty, error) {
	query, args, err := a.db.Select("id", "name").
		From("specialties").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list specialties", err)
	}
	defer rows.Close()

	specialties := make([]*entities.Specialty, 0)
	for rows.Next() {
		specialty := &entities.Specialty{}
		if err := rows.Scan(&specialty.ID, &specialty.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty", err)
		}
		specialties = append(specialties, specialty)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate specialties", err)
	}

	return specialties, nil
}
