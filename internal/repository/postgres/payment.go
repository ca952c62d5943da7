package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

const paymentColumns = `id, booking_id, amount, status, idempotency_key, created_at, updated_at`

// PaymentRepository stores booking charges.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// Create inserts a charge attempt. The idempotency key is unique, so a
// second attempt for the same booking fails with repository.ErrDuplicate.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO payments (id, booking_id, amount, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		p.ID, p.BookingID, p.Amount, p.Status, p.IdempotencyKey,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

// GetByBookingID returns the latest charge of a booking.
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	p, err := scanPayment(r.q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`,
		bookingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

// GetByIdempotencyKey returns nil, nil when no charge carries key.
func (r *PaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	p, err := scanPayment(r.q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE idempotency_key = $1`,
		key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UpdateStatus records the PSP outcome of a charge.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Status, &p.IdempotencyKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
