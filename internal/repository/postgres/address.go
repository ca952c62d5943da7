package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

// AddressRepository is a PostgreSQL implementation of repository.AddressRepository.
type AddressRepository struct {
	q Querier
}

// NewAddressRepository creates a new PostgreSQL address repository.
func NewAddressRepository(db *sql.DB) *AddressRepository {
	return &AddressRepository{q: db}
}

// NewAddressRepositoryWithTx creates an address repository using a transaction.
func NewAddressRepositoryWithTx(tx *sql.Tx) *AddressRepository {
	return &AddressRepository{q: tx}
}

const addressColumns = `id, user_id, street, street_number, city, county, postal_code, country,
		building, apartment, floor, access_instructions, lat, lng, formatted, is_default, created_at`

// Create persists a new address.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	if a.IsDefault {
		if _, err := r.q.ExecContext(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`, a.UserID); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Street,
		a.StreetNumber,
		a.City,
		a.County,
		a.PostalCode,
		a.Country,
		a.Building,
		a.Apartment,
		a.Floor,
		a.AccessInstructions,
		a.Lat,
		a.Lng,
		a.Formatted,
		a.IsDefault,
		a.CreatedAt,
	)
	return mapError(err)
}

// GetByID retrieves an address by ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	a, err := scanAddress(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByUser returns the addresses of a user, default first.
func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func scanAddress(row rowScanner) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Street,
		&a.StreetNumber,
		&a.City,
		&a.County,
		&a.PostalCode,
		&a.Country,
		&a.Building,
		&a.Apartment,
		&a.Floor,
		&a.AccessInstructions,
		&a.Lat,
		&a.Lng,
		&a.Formatted,
		&a.IsDefault,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
