package documentstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/doctorfinder/internal/domain/entities"
	"github.com/zatekoja/doctorfinder/internal/domain/repositories"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

// DynamoAPI is the subset of the DynamoDB client the adapter needs
type DynamoAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// providerItem mirrors a document of the doctors table. Every attribute
// except id may be missing.
type providerItem struct {
	ID         string   `dynamodbav:"id"`
	Name       string   `dynamodbav:"name"`
	Specialty  string   `dynamodbav:"specialty"`
	City       string   `dynamodbav:"city"`
	Latitude   *float64 `dynamodbav:"latitude"`
	Longitude  *float64 `dynamodbav:"longitude"`
	Rating     *float64 `dynamodbav:"rating"`
	PhotoURL   string   `dynamodbav:"photoUrl"`
	Phone      string   `dynamodbav:"phone"`
	Email      string   `dynamodbav:"email"`
	Address    string   `dynamodbav:"address"`
	About      string   `dynamodbav:"about"`
	Education  string   `dynamodbav:"education"`
	Experience string   `dynamodbav:"experience"`
}

func (i providerItem) toEntity() *entities.Provider {
	provider := &entities.Provider{
		ID:         i.ID,
		Name:       i.Name,
		Specialty:  i.Specialty,
		City:       i.City,
		PhotoURL:   i.PhotoURL,
		Phone:      i.Phone,
		Email:      i.Email,
		Address:    i.Address,
		About:      i.About,
		Education:  i.Education,
		Experience: i.Experience,
	}
	if i.Rating != nil {
		provider.Rating = *i.Rating
	}
	if i.Latitude != nil && i.Longitude != nil {
		provider.Location = &entities.Location{
			Latitude:  *i.Latitude,
			Longitude: *i.Longitude,
		}
	}
	return provider
}

// DynamoProviderAdapter reads the provider corpus from a DynamoDB table
type DynamoProviderAdapter struct {
	client    DynamoAPI
	tableName string
}

// NewDynamoProviderAdapter creates a new DynamoDB provider adapter
func NewDynamoProviderAdapter(client DynamoAPI, tableName string) repositories.ProviderRepository {
	return &DynamoProviderAdapter{
		client:    client,
		tableName: tableName,
	}
}

// List scans the whole table and returns providers ordered by ID.
// Items that fail to decode are logged and skipped.
func (a *DynamoProviderAdapter) List(ctx context.Context) ([]*entities.Provider, error) {
	providers := make([]*entities.Provider, 0)
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName: aws.String(a.tableName),
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := a.client.Scan(ctx, input)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to scan providers", err)
		}

		for _, raw := range result.Items {
			var item providerItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				log.Warn().Err(err).Str("table", a.tableName).Msg("Skipping undecodable provider item")
				continue
			}
			if item.ID == "" {
				continue
			}
			providers = append(providers, item.toEntity())
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if len(lastEvaluatedKey) == 0 {
			break
		}
	}

	slices.SortStableFunc(providers, func(x, y *entities.Provider) int {
		return cmp.Compare(x.ID, y.ID)
	})
	return providers, nil
}

// GetByID retrieves a provider by ID
func (a *DynamoProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	result, err := a.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(a.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get provider", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}

	var item providerItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewInternalError("failed to decode provider", err)
	}
	return item.toEntity(), nil
}

// GetByIDs retrieves the providers that exist among ids, in the order given
func (a *DynamoProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	providers := make([]*entities.Provider, 0, len(ids))
	for _, id := range ids {
		provider, err := a.GetByID(ctx, id)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, nil
}
