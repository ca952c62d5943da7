package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

func setupMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var bookingColumnNames = []string{
	"id", "customer_id", "cleaner_id", "cleaner_profile_id", "cleaner_tier", "cleaner_rating",
	"location_size_id", "service_id", "service_type", "frequency", "add_on_ids",
	"scheduled_date", "scheduled_time", "duration", "address_id",
	"cleaner_hourly_rate", "service_price", "add_ons_price", "travel_fee", "platform_fee", "total_price", "cleaner_payout",
	"status", "confirmed_at", "started_at", "completed_at", "cancelled_at",
	"cancellation_reason", "cancellation_note", "cancelled_by_id", "cancelled_by_role",
	"customer_notes", "cleaner_notes", "created_at", "updated_at",
}

func bookingRows(now time.Time, ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows(bookingColumnNames)
	for _, id := range ids {
		rows.AddRow(
			id, "cust-1", "clean-1", "prof-1", "STANDARD", 4.8,
			"2-bedrooms", "general-cleaning", "GENERAL", "ONE_TIME", "{oven}",
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00", 3.5, "addr-1",
			int64(8500), int64(25500), int64(5000), int64(0), int64(4575), int64(35075), int64(30500),
			"CONFIRMED", now, nil, nil, nil,
			nil, nil, nil, nil,
			"ring twice", nil, now, now,
		)
	}
	return rows
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	err := repo.Create(context.Background(), &domain.Booking{
		ID:            "b-1",
		Status:        domain.BookingStatusPending,
		ScheduledDate: now,
		ScheduledTime: "14:00",
		CreatedAt:     now,
		UpdatedAt:     now,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs("b-1").
		WillReturnRows(bookingRows(now, "b-1"))

	b, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)

	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, []string{"oven"}, b.AddOnIDs)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
	assert.Equal(t, now, b.ConfirmedAt)
	assert.True(t, b.StartedAt.IsZero())
	assert.Equal(t, "ring twice", b.CustomerNotes)
	assert.Empty(t, b.CleanerNotes)
	assert.Equal(t, b.TotalPrice-b.PlatformFee, b.CleanerPayout)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookingColumnNames))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingRepository_ListByCustomer_WithStatus(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)
	status := domain.BookingStatusConfirmed

	mock.ExpectQuery(`WHERE customer_id = \$1 AND status = \$2 ORDER BY scheduled_date DESC, scheduled_time DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("cust-1", status, 10, 20).
		WillReturnRows(bookingRows(time.Now(), "b-1", "b-2"))

	list, err := repo.ListByCustomer(context.Background(), "cust-1", domain.BookingFilter{Status: &status, Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByCleaner_DefaultLimit(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`WHERE cleaner_id = \$1 ORDER BY .* LIMIT \$2$`).
		WithArgs("clean-1", 100).
		WillReturnRows(bookingRows(time.Now()))

	list, err := repo.ListByCleaner(context.Background(), "clean-1", domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListActiveOnDate(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE scheduled_date = \$1 AND status IN \('PENDING', 'CONFIRMED', 'IN_PROGRESS'\)`).
		WithArgs(date).
		WillReturnRows(bookingRows(time.Now(), "b-1"))

	list, err := repo.ListActiveOnDate(context.Background(), date)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)
	now := time.Now()
	b := &domain.Booking{ID: "b-1", Status: domain.BookingStatusConfirmed, ConfirmedAt: now, UpdatedAt: now}

	mock.ExpectExec(`UPDATE bookings\s+SET status = \$1.*WHERE id = \$12 AND status = \$13`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), b, domain.BookingStatusPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_Conflict(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)
	b := &domain.Booking{ID: "b-1", Status: domain.BookingStatusConfirmed, UpdatedAt: time.Now()}

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT status FROM bookings WHERE id = \$1`).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("CANCELLED"))

	err := repo.UpdateStatus(context.Background(), b, domain.BookingStatusPending)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)
	assert.Contains(t, err.Error(), "CANCELLED")
}

func TestBookingRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT status FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.UpdateStatus(context.Background(), &domain.Booking{ID: "nope"}, domain.BookingStatusPending)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingRepository_CountByStatus(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM bookings WHERE cleaner_id = \$1 GROUP BY status`).
		WithArgs("clean-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("PENDING", 2).
			AddRow("COMPLETED", 5))

	counts, err := repo.CountByStatus(context.Background(), "clean-1", domain.RoleCleaner)
	require.NoError(t, err)
	assert.Equal(t, map[domain.BookingStatus]int{
		domain.BookingStatusPending:   2,
		domain.BookingStatusCompleted: 5,
	}, counts)
}

func TestTransactor_CommitsAndRollsBack(t *testing.T) {
	db, mock := setupMock(t)
	tx := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(repos repository.TxRepositories) error {
		return repos.Bookings.Create(context.Background(), &domain.Booking{ID: "b-1"})
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = tx.WithinTx(context.Background(), func(repos repository.TxRepositories) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
