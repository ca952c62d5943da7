package repository

import (
	"context"
	"time"

	"cleanhome/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListByCustomer returns the bookings placed by a customer, newest schedule first.
	ListByCustomer(ctx context.Context, customerID string, filter domain.BookingFilter) ([]*domain.Booking, error)

	// ListByCleaner returns the jobs assigned to a cleaner, newest schedule first.
	ListByCleaner(ctx context.Context, cleanerID string, filter domain.BookingFilter) ([]*domain.Booking, error)

	// ListActiveOnDate returns PENDING, CONFIRMED and IN_PROGRESS bookings
	// scheduled on the given date.
	ListActiveOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)

	// UpdateStatus persists the lifecycle fields of booking only if the
	// stored status still equals expected. Returns ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error

	// CountByStatus counts the bookings of a party grouped by status.
	CountByStatus(ctx context.Context, userID string, role domain.Role) (map[domain.BookingStatus]int, error)
}
