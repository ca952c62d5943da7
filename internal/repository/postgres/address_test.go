package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

var addressColumnNames = []string{
	"id", "user_id", "street", "street_number", "city", "county", "postal_code", "country",
	"building", "apartment", "floor", "access_instructions", "lat", "lng", "formatted", "is_default", "created_at",
}

func TestAddressRepository_CreateDefault(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAddressRepository(db)

	mock.ExpectExec(`UPDATE addresses SET is_default = FALSE WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO addresses`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.Address{ID: "a-1", UserID: "u-1", IsDefault: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_CreateDuplicate(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAddressRepository(db)

	mock.ExpectExec(`INSERT INTO addresses`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "addresses_pkey"})

	err := repo.Create(context.Background(), &domain.Address{ID: "a-1", UserID: "u-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAddressRepository_ListByUser(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAddressRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM addresses WHERE user_id = \$1 ORDER BY is_default DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(addressColumnNames).
			AddRow("a-2", "u-1", "Strada Lipscani", "12", "Bucuresti", "Bucuresti", "030031", "RO", "", "4", "", "", 44.43, 26.10, "", true, now).
			AddRow("a-1", "u-1", "Strada Mosilor", "1", "Bucuresti", "Bucuresti", "020011", "RO", "", "", "", "", 44.44, 26.11, "", false, now))

	list, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, list[0], domain.DefaultAddress(list))
}

func TestAddressRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAddressRepository(db)

	mock.ExpectQuery(`FROM addresses WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(addressColumnNames))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
