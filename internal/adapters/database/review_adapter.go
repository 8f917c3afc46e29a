package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	"github.com/zatekoja/doctorfinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

const reviewsTable = "reviews"

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":           review.ID,
		"provider_id":  review.ProviderID,
		"patient_id":   review.PatientID,
		"patient_name": review.PatientName,
		"rating":       review.Rating,
		"comment":      review.Comment,
		"created_at":   review.CreatedAt,
	}

	query, args, err := a.db.Insert(reviewsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// ListByProvider returns a provider's reviews, newest first
func (a *ReviewAdapter) ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	query, args, err := a.db.Select(
		"id", "provider_id", "patient_id", "patient_name", "rating", "comment", "created_at",
	).From(reviewsTable).
		Where(goqu.Ex{"provider_id": providerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		review := &entities.Review{}
		var patientName, comment sql.NullString
		if err := rows.Scan(
			&review.ID,
			&review.ProviderID,
			&review.PatientID,
			&patientName,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.PatientName = patientName.String
		review.Comment = comment.String
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

// SummaryByProvider aggregates a provider's reviews
func (a *ReviewAdapter) SummaryByProvider(ctx context.Context, providerID string) (*entities.ReviewSummary, error) {
	query, args, err := a.db.From(reviewsTable).
		Select(
			goqu.COUNT("*"),
			goqu.COALESCE(goqu.AVG("rating"), 0),
		).
		Where(goqu.Ex{"provider_id": providerID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	summary := &entities.ReviewSummary{}
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&summary.Count, &summary.Average); err != nil {
		return nil, apperrors.NewInternalError("failed to summarize reviews", err)
	}

	return summary, nil
}

// CountByProviderIDs returns review counts keyed by provider ID
func (a *ReviewAdapter) CountByProviderIDs(ctx context.Context, providerIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(providerIDs))
	if len(providerIDs) == 0 {
		return counts, nil
	}

	query, args, err := a.db.From(reviewsTable).
		Select("provider_id", goqu.COUNT("*")).
		Where(goqu.Ex{"provider_id": providerIDs}).
		GroupBy("provider_id").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count reviews", err)
	}
	defer rows.Close()

	for rows.Next() {
		var providerID string
		var count int
		if err := rows.Scan(&providerID, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review count", err)
		}
		counts[providerID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate review counts", err)
	}

	return counts, nil
}
