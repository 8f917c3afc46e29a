package database_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/doctorfinder/internal/adapters/database"
	apperrors "github.com/zatekoja/doctorfinder/pkg/errors"
)

func TestProviderAdapter_List(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	rows := sqlmock.NewRows(providerColumns).
		AddRow("alice", "Dr. Alice", "Cardiology", "Gaborone", -24.65, 25.91, 4.8,
			"https://img/alice.png", "+267 1", "alice@example.com", "Main Mall", "About", "UB", "10 years").
		AddRow("bob", "Dr. Bob", "Dermatology", nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil).
		AddRow("carol", "Dr. Carol", "Cardiology", "Francistown", -21.17, nil, 3.5,
			nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "providers" ORDER BY "id" ASC`)).WillReturnRows(rows)

	providers, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 3)

	alice := providers[0]
	assert.Equal(t, "alice", alice.ID)
	assert.Equal(t, "Gaborone", alice.City)
	require.NotNil(t, alice.Location)
	assert.InDelta(t, -24.65, alice.Location.Latitude, 1e-9)
	assert.InDelta(t, 25.91, alice.Location.Longitude, 1e-9)
	assert.Equal(t, 4.8, alice.Rating)
	assert.Equal(t, "10 years", alice.Experience)

	bob := providers[1]
	assert.Empty(t, bob.City)
	assert.Nil(t, bob.Location)
	assert.Zero(t, bob.Rating)

	// one coordinate is not a location
	assert.Nil(t, providers[2].Location)
}

func TestProviderAdapter_List_Empty(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(`FROM "providers"`).WillReturnRows(sqlmock.NewRows(providerColumns))

	providers, err := adapter.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, providers)
	assert.Empty(t, providers)
}

func TestProviderAdapter_List_QueryError(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(`FROM "providers"`).WillReturnError(errors.New("connection reset"))

	providers, err := adapter.List(context.Background())
	assert.Nil(t, providers)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestProviderAdapter_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewProviderAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("id" = 'alice')`)).
			WillReturnRows(sqlmock.NewRows(providerColumns).
				AddRow("alice", "Dr. Alice", "Cardiology", "Gaborone", -24.65, 25.91, 4.8,
					nil, nil, nil, nil, nil, nil, nil))

		provider, err := adapter.GetByID(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "Dr. Alice", provider.Name)
	})

	t.Run("not found", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewProviderAdapter(client)

		mock.ExpectQuery(`FROM "providers"`).WillReturnError(sql.ErrNoRows)

		provider, err := adapter.GetByID(context.Background(), "missing")
		assert.Nil(t, provider)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestProviderAdapter_GetByIDs(t *testing.T) {
	t.Run("empty input skips the database", func(t *testing.T) {
		client, _ := newMockClient(t)
		adapter := database.NewProviderAdapter(client)

		providers, err := adapter.GetByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, providers)
	})

	t.Run("in clause", func(t *testing.T) {
		client, mock := newMockClient(t)
		adapter := database.NewProviderAdapter(client)

		mock.ExpectQuery(regexp.QuoteMeta(`"id" IN ('alice', 'bob')`)).
			WillReturnRows(sqlmock.NewRows(providerColumns).
				AddRow("alice", "Dr. Alice", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

		providers, err := adapter.GetByIDs(context.Background(), []string{"alice", "bob"})
		require.NoError(t, err)
		require.Len(t, providers, 1)
		assert.Equal(t, "alice", providers[0].ID)
	})
}
