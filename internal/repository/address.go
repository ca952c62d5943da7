package repository

import (
	"context"

	"cleanhome/internal/domain"
)

// AddressRepository defines the persistence operations for saved addresses.
type AddressRepository interface {
	// Create persists a new address. A default address clears the flag on
	// the user's other addresses.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by ID.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByUser returns the saved addresses of a user, default first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Address, error)
}
