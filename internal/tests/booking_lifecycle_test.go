package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/service"
)

// ──────────────────────────────────────────────
// 2. BOOKING LIFECYCLE
// ──────────────────────────────────────────────

func TestLifecycle_HappyPathChargesTotalAndIssuesReceipt(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()

	b, err := env.Booking.CreateBooking(ctx, customerSession, bookingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := env.Lifecycle.Confirm(ctx, cleanerSession, b.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != domain.BookingStatusConfirmed || !confirmed.ConfirmedAt.Equal(fixedNow) {
		t.Errorf("unexpected confirmed booking: %s at %v", confirmed.Status, confirmed.ConfirmedAt)
	}

	if _, err := env.Lifecycle.Start(ctx, cleanerSession, b.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := env.Lifecycle.Complete(ctx, cleanerSession, b.ID, "  All done, oven sparkling  ")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if result.Booking.Status != domain.BookingStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", result.Booking.Status)
	}
	if result.Booking.CleanerNotes != "All done, oven sparkling" {
		t.Errorf("unexpected cleaner notes %q", result.Booking.CleanerNotes)
	}

	if result.Payment == nil {
		t.Fatal("expected a payment")
	}
	if result.Payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS payment, got %s", result.Payment.Status)
	}
	if result.Payment.Amount != 35075 {
		t.Errorf("expected charge of 35075, got %d", result.Payment.Amount)
	}

	if result.Receipt == nil {
		t.Fatal("expected a receipt")
	}
	if result.Receipt.TotalPrice != 35075 || result.Receipt.Subtotal != 30500 {
		t.Errorf("unexpected receipt totals: total=%d subtotal=%d", result.Receipt.TotalPrice, result.Receipt.Subtotal)
	}
	if result.Receipt.ServiceName != "General Cleaning" {
		t.Errorf("unexpected service name %q", result.Receipt.ServiceName)
	}
	if result.Receipt.PaymentStatus != domain.PaymentStatusSuccess {
		t.Errorf("expected receipt payment status SUCCESS, got %s", result.Receipt.PaymentStatus)
	}

	stored := env.Bookings.GetBooking(b.ID)
	if stored.Status != domain.BookingStatusCompleted {
		t.Errorf("stored status %s", stored.Status)
	}
}

func TestLifecycle_PaymentFailureKeepsBookingCompleted(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()
	env.PSP.SetFailure(false, ErrMockPSPDown)

	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusInProgress)

	result, err := env.Lifecycle.Complete(ctx, cleanerSession, "booking-1", "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if result.Booking.Status != domain.BookingStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", result.Booking.Status)
	}
	if result.Payment == nil || result.Payment.Status != domain.PaymentStatusFailed {
		t.Fatalf("expected FAILED payment, got %+v", result.Payment)
	}
	if result.Receipt == nil || result.Receipt.PaymentStatus != domain.PaymentStatusFailed {
		t.Errorf("expected receipt with FAILED payment, got %+v", result.Receipt)
	}
}

func TestLifecycle_CompleteIsChargedOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusInProgress)

	if _, err := env.Lifecycle.Complete(ctx, cleanerSession, "booking-1", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_, err := env.Lifecycle.Complete(ctx, cleanerSession, "booking-1", "")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second completion, got %v", err)
	}

	if env.Payments.CountPayments() != 1 {
		t.Errorf("expected 1 payment, got %d", env.Payments.CountPayments())
	}
	if env.PSP.ChargeCallCount != 1 {
		t.Errorf("expected 1 PSP charge, got %d", env.PSP.ChargeCallCount)
	}
}

func TestLifecycle_RoleAndPartyChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  domain.BookingStatus
		run     func(env *testEnv) error
		wantErr error
	}{
		{
			name:   "customer cannot confirm",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Confirm(context.Background(), customerSession, "booking-1")
				return err
			},
			wantErr: domain.ErrActionNotPermitted,
		},
		{
			name:   "customer cannot start",
			status: domain.BookingStatusConfirmed,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Start(context.Background(), customerSession, "booking-1")
				return err
			},
			wantErr: domain.ErrActionNotPermitted,
		},
		{
			name:   "another cleaner is not a party",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Confirm(context.Background(), otherCleanerSession, "booking-1")
				return err
			},
			wantErr: service.ErrNotBookingParty,
		},
		{
			name:   "another customer is not a party",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Cancel(context.Background(), otherCustomerSession, "booking-1",
					service.CancelInput{Reason: "CUSTOMER_REQUEST"})
				return err
			},
			wantErr: service.ErrNotBookingParty,
		},
		{
			name:   "admin reads but does not act",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Confirm(context.Background(), adminSession, "booking-1")
				return err
			},
			wantErr: domain.ErrActionNotPermitted,
		},
		{
			name:   "cannot start a pending booking",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Start(context.Background(), cleanerSession, "booking-1")
				return err
			},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:   "no-show only from confirmed",
			status: domain.BookingStatusInProgress,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.MarkNoShow(context.Background(), cleanerSession, "booking-1")
				return err
			},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:   "empty booking id",
			status: domain.BookingStatusPending,
			run: func(env *testEnv) error {
				_, err := env.Lifecycle.Confirm(context.Background(), cleanerSession, "")
				return err
			},
			wantErr: service.ErrInvalidBookingID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			env.activeBooking("booking-1", "cleaner-1", "10:00", 3, tt.status)

			err := tt.run(env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := env.Bookings.GetBooking("booking-1").Status; got != tt.status {
				t.Errorf("status changed to %s", got)
			}
		})
	}
}

func TestLifecycle_CancelRecordsCanceller(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusConfirmed)

	b, err := env.Lifecycle.Cancel(context.Background(), customerSession, "booking-1", service.CancelInput{
		Reason: "customer_request",
		Note:   " plans changed ",
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if b.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", b.Status)
	}
	if b.CancellationReason != domain.CancellationCustomerRequest {
		t.Errorf("unexpected reason %s", b.CancellationReason)
	}
	if b.CancellationNote != "plans changed" {
		t.Errorf("unexpected note %q", b.CancellationNote)
	}
	if b.CancelledByID != customerSession.UserID || b.CancelledByRole != domain.RoleCustomer {
		t.Errorf("unexpected canceller %s/%s", b.CancelledByID, b.CancelledByRole)
	}
	if !b.CancelledAt.Equal(fixedNow) {
		t.Errorf("unexpected cancelled at %v", b.CancelledAt)
	}
}

func TestLifecycle_CancelRejectsUnknownReason(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)

	_, err := env.Lifecycle.Cancel(context.Background(), cleanerSession, "booking-1", service.CancelInput{Reason: "BORED"})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// TestLifecycle_TerminalBookingsCannotBeCancelled verifies that completed,
// cancelled and no-show bookings stay as they are.
func TestLifecycle_TerminalBookingsCannotBeCancelled(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
		domain.BookingStatusNoShow,
	} {
		env := newTestEnv()
		env.activeBooking("booking-1", "cleaner-1", "10:00", 3, status)

		_, err := env.Lifecycle.Cancel(context.Background(), customerSession, "booking-1",
			service.CancelInput{Reason: "OTHER"})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestLifecycle_MarkNoShow(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusConfirmed)

	b, err := env.Lifecycle.MarkNoShow(context.Background(), cleanerSession, "booking-1")
	if err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if b.Status != domain.BookingStatusNoShow {
		t.Errorf("expected NO_SHOW, got %s", b.Status)
	}

	_, err = env.Lifecycle.MarkNoShow(context.Background(), cleanerSession, "booking-1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on a second no-show, got %v", err)
	}
}

func TestLifecycle_BookingLockHeld(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)
	env.Locks.Hold("lock:booking:booking-1", time.Minute)

	_, err := env.Lifecycle.Confirm(context.Background(), cleanerSession, "booking-1")
	if !errors.Is(err, service.ErrBookingBusy) {
		t.Fatalf("expected ErrBookingBusy, got %v", err)
	}
}

// TestLifecycle_ConcurrentConfirmSucceedsOnce races confirmations of the same
// booking; exactly one may win.
func TestLifecycle_ConcurrentConfirmSucceedsOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)

	const workers = 20
	var (
		wg        sync.WaitGroup
		successes int32
		start     = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := env.Lifecycle.Confirm(context.Background(), cleanerSession, "booking-1")
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, service.ErrBookingBusy),
				errors.Is(err, domain.ErrInvalidTransition),
				errors.Is(err, service.ErrConcurrentUpdate):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 successful confirm, got %d", successes)
	}
	if env.Bookings.UpdateStatusCallCount != 1 {
		t.Errorf("expected 1 status write, got %d", env.Bookings.UpdateStatusCallCount)
	}
}

// staleBookingRepository serves a snapshot taken before another writer
// changed the booking.
type staleBookingRepository struct {
	*MockBookingRepository
	snapshot *domain.Booking
}

func (r *staleBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	copy := *r.snapshot
	return &copy, nil
}

func TestLifecycle_StaleReadIsRejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	pending := env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)
	snapshot := *pending

	// Another writer cancels the booking after our read.
	cancelled := *pending
	cancelled.Status = domain.BookingStatusCancelled
	env.Bookings.AddBooking(&cancelled)

	stale := &staleBookingRepository{MockBookingRepository: env.Bookings, snapshot: &snapshot}
	bookings := service.NewBookingService(service.BookingDeps{
		Transactor: &MockTransactor{Bookings: env.Bookings, Addresses: env.Addresses},
		Bookings:   stale,
		Addresses:  env.Addresses,
		Cleaners:   env.Cleaners,
		Catalog:    env.Catalog,
	}, service.BookingConfig{Country: "RO"})
	lifecycle := service.NewLifecycleService(bookings)

	_, err := lifecycle.Confirm(context.Background(), cleanerSession, "booking-1")
	if !errors.Is(err, service.ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
	if got := env.Bookings.GetBooking("booking-1").Status; got != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED to survive, got %s", got)
	}
}

// ──────────────────────────────────────────────
// 3. BOOKING READS
// ──────────────────────────────────────────────

func TestGetBooking_AffordancesPerRole(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)
	ctx := context.Background()

	cleanerView, err := env.Booking.GetBooking(ctx, cleanerSession, "booking-1")
	if err != nil {
		t.Fatalf("cleaner view: %v", err)
	}
	if !cleanerView.Actions.CanConfirm || !cleanerView.Actions.CanCancel || cleanerView.Actions.CanStart {
		t.Errorf("unexpected cleaner actions %+v", cleanerView.Actions)
	}
	if cleanerView.Subtotal != 25500 {
		t.Errorf("expected subtotal 25500, got %d", cleanerView.Subtotal)
	}

	customerView, err := env.Booking.GetBooking(ctx, customerSession, "booking-1")
	if err != nil {
		t.Fatalf("customer view: %v", err)
	}
	if customerView.Actions.CanConfirm || !customerView.Actions.CanCancel {
		t.Errorf("unexpected customer actions %+v", customerView.Actions)
	}

	adminView, err := env.Booking.GetBooking(ctx, adminSession, "booking-1")
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if adminView.Actions != (domain.Affordances{}) {
		t.Errorf("expected no admin actions, got %+v", adminView.Actions)
	}

	if _, err := env.Booking.GetBooking(ctx, otherCustomerSession, "booking-1"); !errors.Is(err, service.ErrNotBookingParty) {
		t.Errorf("expected ErrNotBookingParty, got %v", err)
	}
}

func TestListBookings_SplitsUpcomingAndPast(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("later", "cleaner-1", "15:00", 2, domain.BookingStatusConfirmed)
	env.activeBooking("sooner", "cleaner-1", "08:00", 2, domain.BookingStatusPending)
	env.activeBooking("done", "cleaner-1", "11:00", 2, domain.BookingStatusCompleted)

	list, err := env.Booking.ListBookings(context.Background(), customerSession, domain.BookingFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(list.Upcoming) != 2 || list.Upcoming[0].ID != "sooner" || list.Upcoming[1].ID != "later" {
		t.Errorf("unexpected upcoming order: %v", ids(list.Upcoming))
	}
	if len(list.Past) != 1 || list.Past[0].ID != "done" {
		t.Errorf("unexpected past list: %v", ids(list.Past))
	}

	jobs, err := env.Booking.ListBookings(context.Background(), otherCleanerSession, domain.BookingFilter{})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs.Upcoming)+len(jobs.Past) != 0 {
		t.Errorf("expected no jobs for cleaner-2")
	}

	if _, err := env.Booking.ListBookings(context.Background(), adminSession, domain.BookingFilter{}); !errors.Is(err, service.ErrRoleNotAllowed) {
		t.Errorf("expected ErrRoleNotAllowed for admin, got %v", err)
	}
}

func TestBadgeCounts_CachedUntilBookingChanges(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ctx := context.Background()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusPending)

	counts, err := env.Booking.BadgeCounts(ctx, cleanerSession)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[domain.BookingStatusPending] != 1 {
		t.Fatalf("expected 1 pending, got %v", counts)
	}

	if _, err := env.Lifecycle.Confirm(ctx, cleanerSession, "booking-1"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	counts, err = env.Booking.BadgeCounts(ctx, cleanerSession)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[domain.BookingStatusPending] != 0 || counts[domain.BookingStatusConfirmed] != 1 {
		t.Errorf("expected counts refreshed after confirm, got %v", counts)
	}
}

func TestReceipt_BeforePayment(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.activeBooking("booking-1", "cleaner-1", "10:00", 3, domain.BookingStatusConfirmed)

	receipt, err := env.Booking.Receipt(context.Background(), customerSession, "booking-1")
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if receipt.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected PENDING payment, got %s", receipt.PaymentStatus)
	}
	if receipt.Address != "Strada Memorandumului 28, Cluj-Napoca" {
		t.Errorf("unexpected address %q", receipt.Address)
	}
}

func ids(bookings []*domain.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}
