package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, customer_id, cleaner_id, cleaner_profile_id, cleaner_tier, cleaner_rating,
		location_size_id, service_id, service_type, frequency, add_on_ids,
		scheduled_date, scheduled_time, duration, address_id,
		cleaner_hourly_rate, service_price, add_ons_price, travel_fee, platform_fee, total_price, cleaner_payout,
		status, confirmed_at, started_at, completed_at, cancelled_at,
		cancellation_reason, cancellation_note, cancelled_by_id, cancelled_by_role,
		customer_notes, cleaner_notes, created_at, updated_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35)
	`

	frequency := b.Frequency
	if frequency == "" {
		frequency = domain.FrequencyOneTime
	}
	addOnIDs := b.AddOnIDs
	if addOnIDs == nil {
		addOnIDs = []string{}
	}

	_, err := r.q.ExecContext(ctx, query,
		b.ID,
		b.CustomerID,
		b.CleanerID,
		b.CleanerProfileID,
		b.CleanerTier,
		b.CleanerRating,
		b.LocationSizeID,
		b.ServiceID,
		b.ServiceType,
		frequency,
		pq.Array(addOnIDs),
		b.ScheduledDate,
		b.ScheduledTime,
		b.Duration,
		b.AddressID,
		b.CleanerHourlyRate,
		b.ServicePrice,
		b.AddOnsPrice,
		b.TravelFee,
		b.PlatformFee,
		b.TotalPrice,
		b.CleanerPayout,
		b.Status,
		nullTime(b.ConfirmedAt),
		nullTime(b.StartedAt),
		nullTime(b.CompletedAt),
		nullTime(b.CancelledAt),
		nullString(string(b.CancellationReason)),
		nullString(b.CancellationNote),
		nullString(b.CancelledByID),
		nullString(string(b.CancelledByRole)),
		nullString(b.CustomerNotes),
		nullString(b.CleanerNotes),
		b.CreatedAt,
		b.UpdatedAt,
	)

	return mapError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByCustomer returns the bookings placed by a customer.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return r.listByParty(ctx, "customer_id", customerID, filter)
}

// ListByCleaner returns the jobs assigned to a cleaner.
func (r *BookingRepository) ListByCleaner(ctx context.Context, cleanerID string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return r.listByParty(ctx, "cleaner_id", cleanerID, filter)
}

// listByParty is only called with a fixed column name.
func (r *BookingRepository) listByParty(ctx context.Context, column, userID string, filter domain.BookingFilter) ([]*domain.Booking, error) {
	var sb strings.Builder
	args := []any{userID}

	sb.WriteString(`SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	sb.WriteString(" ORDER BY scheduled_date DESC, scheduled_time DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return r.list(ctx, sb.String(), args...)
}

// ListActiveOnDate returns the calendar-occupying bookings of a date.
func (r *BookingRepository) ListActiveOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE scheduled_date = $1 AND status IN ('PENDING', 'CONFIRMED', 'IN_PROGRESS')
		ORDER BY scheduled_time`

	return r.list(ctx, query, date)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus writes the lifecycle fields guarded by the expected status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, confirmed_at = $2, started_at = $3, completed_at = $4, cancelled_at = $5,
			cancellation_reason = $6, cancellation_note = $7, cancelled_by_id = $8, cancelled_by_role = $9,
			cleaner_notes = $10, updated_at = $11
		WHERE id = $12 AND status = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		b.Status,
		nullTime(b.ConfirmedAt),
		nullTime(b.StartedAt),
		nullTime(b.CompletedAt),
		nullTime(b.CancelledAt),
		nullString(string(b.CancellationReason)),
		nullString(b.CancellationNote),
		nullString(b.CancelledByID),
		nullString(string(b.CancelledByRole)),
		nullString(b.CleanerNotes),
		b.UpdatedAt,
		b.ID,
		expected,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var current domain.BookingStatus
		err := r.q.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1`, b.ID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: expected %s, found %s", repository.ErrStatusConflict, expected, current)
	}

	return nil
}

// CountByStatus counts the bookings of a customer or cleaner per status.
func (r *BookingRepository) CountByStatus(ctx context.Context, userID string, role domain.Role) (map[domain.BookingStatus]int, error) {
	column := "customer_id"
	if role == domain.RoleCleaner {
		column = "cleaner_id"
	}
	query := `SELECT status, COUNT(*) FROM bookings WHERE ` + column + ` = $1 GROUP BY status`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var confirmedAt, startedAt, completedAt, cancelledAt sql.NullTime
	var reason, note, cancelledByID, cancelledByRole, customerNotes, cleanerNotes sql.NullString

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.CleanerID,
		&b.CleanerProfileID,
		&b.CleanerTier,
		&b.CleanerRating,
		&b.LocationSizeID,
		&b.ServiceID,
		&b.ServiceType,
		&b.Frequency,
		pq.Array(&b.AddOnIDs),
		&b.ScheduledDate,
		&b.ScheduledTime,
		&b.Duration,
		&b.AddressID,
		&b.CleanerHourlyRate,
		&b.ServicePrice,
		&b.AddOnsPrice,
		&b.TravelFee,
		&b.PlatformFee,
		&b.TotalPrice,
		&b.CleanerPayout,
		&b.Status,
		&confirmedAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&reason,
		&note,
		&cancelledByID,
		&cancelledByRole,
		&customerNotes,
		&cleanerNotes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ConfirmedAt = confirmedAt.Time
	b.StartedAt = startedAt.Time
	b.CompletedAt = completedAt.Time
	b.CancelledAt = cancelledAt.Time
	b.CancellationReason = domain.CancellationReason(reason.String)
	b.CancellationNote = note.String
	b.CancelledByID = cancelledByID.String
	b.CancelledByRole = domain.Role(cancelledByRole.String)
	b.CustomerNotes = customerNotes.String
	b.CleanerNotes = cleanerNotes.String

	return &b, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
