package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/repository"
)

// LifecycleService performs booking status transitions.
type LifecycleService struct {
	bookings *BookingService
	now      func() time.Time
}

// NewLifecycleService creates a new LifecycleService on top of the booking service.
func NewLifecycleService(bookings *BookingService) *LifecycleService {
	return &LifecycleService{bookings: bookings, now: time.Now}
}

// SetClock overrides time.Now.
func (s *LifecycleService) SetClock(now func() time.Time) {
	s.now = now
}

// Confirm accepts a pending booking (cleaner).
func (s *LifecycleService) Confirm(ctx context.Context, session auth.Session, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, session, bookingID, domain.ActionConfirm, func(b *domain.Booking, _ domain.Role, now time.Time) {
		b.ConfirmedAt = now
	})
}

// Start marks a confirmed booking as in progress (cleaner).
func (s *LifecycleService) Start(ctx context.Context, session auth.Session, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, session, bookingID, domain.ActionStart, func(b *domain.Booking, _ domain.Role, now time.Time) {
		b.StartedAt = now
	})
}

// CompletionResult is a completed booking with its payment and receipt.
// Payment and Receipt are nil when charging failed; the booking stays completed.
type CompletionResult struct {
	Booking *domain.Booking
	Payment *domain.Payment
	Receipt *domain.Receipt
}

// Complete finishes an in-progress booking (cleaner), charges the total
// price and issues the receipt.
func (s *LifecycleService) Complete(ctx context.Context, session auth.Session, bookingID, notes string) (*CompletionResult, error) {
	b, err := s.transition(ctx, session, bookingID, domain.ActionComplete, func(b *domain.Booking, _ domain.Role, now time.Time) {
		b.CompletedAt = now
		if n := strings.TrimSpace(notes); n != "" {
			b.CleanerNotes = n
		}
	})
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{Booking: b}
	deps := s.bookings.deps

	if deps.Payments != nil {
		payment, err := deps.Payments.ProcessPayment(ctx, ProcessPaymentRequest{
			BookingID: b.ID,
			Amount:    b.TotalPrice,
		})
		if err != nil {
			// The booking is completed; the charge can be retried.
			log.Printf("lifecycle: payment failed booking_id=%s err=%v", b.ID, err)
		}
		result.Payment = payment
	}

	if deps.Notifications != nil && result.Payment != nil {
		switch result.Payment.Status {
		case domain.PaymentStatusSuccess:
			_ = deps.Notifications.NotifyPaymentSuccess(ctx, result.Payment, b.CustomerID)
		case domain.PaymentStatusFailed:
			_ = deps.Notifications.NotifyPaymentFailed(ctx, result.Payment, b.CustomerID)
		}
	}

	if deps.Receipts != nil {
		receipt, err := s.bookings.receipt(ctx, b)
		if err != nil {
			log.Printf("lifecycle: receipt failed booking_id=%s err=%v", b.ID, err)
		} else {
			result.Receipt = receipt
			if deps.Notifications != nil {
				_ = deps.Notifications.NotifyReceiptReady(ctx, receipt)
			}
		}
	}

	return result, nil
}

// CancelInput carries the reason of a cancellation.
type CancelInput struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// Cancel cancels a pending, confirmed or in-progress booking (customer or cleaner).
func (s *LifecycleService) Cancel(ctx context.Context, session auth.Session, bookingID string, input CancelInput) (*domain.Booking, error) {
	reason, ok := domain.ParseCancellationReason(strings.ToUpper(input.Reason))
	if !ok {
		return nil, fmt.Errorf("%w: unknown cancellation reason %q", ErrInvalidInput, input.Reason)
	}

	b, err := s.transition(ctx, session, bookingID, domain.ActionCancel, func(b *domain.Booking, role domain.Role, now time.Time) {
		b.CancelledAt = now
		b.CancellationReason = reason
		b.CancellationNote = strings.TrimSpace(input.Note)
		b.CancelledByID = session.UserID
		b.CancelledByRole = role
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCancellation(string(reason), string(b.CancelledByRole))
	return b, nil
}

// MarkNoShow records that a confirmed job could not be performed (cleaner).
func (s *LifecycleService) MarkNoShow(ctx context.Context, session auth.Session, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, session, bookingID, domain.ActionNoShow, func(*domain.Booking, domain.Role, time.Time) {})
}

// transition moves a booking along the lifecycle table. The booking lock
// serialises transitions of one booking; the status compare-and-set rejects
// writes based on a stale read.
func (s *LifecycleService) transition(
	ctx context.Context,
	session auth.Session,
	bookingID string,
	action domain.Action,
	mutate func(b *domain.Booking, role domain.Role, now time.Time),
) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	deps := s.bookings.deps

	if deps.LockStore != nil {
		locked, err := deps.LockStore.AcquireBookingLock(ctx, bookingID, s.bookings.cfg.LockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			metrics.RecordTransition(string(action), "busy")
			return nil, ErrBookingBusy
		}
		defer deps.LockStore.ReleaseBookingLock(ctx, bookingID)
	}

	b, err := deps.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	role, err := partyRole(b, session)
	if err != nil {
		return nil, err
	}

	next, err := domain.Transition(b.Status, action, role)
	if err != nil {
		metrics.RecordTransition(string(action), "rejected")
		return nil, err
	}

	expected := b.Status
	now := s.now()
	b.Status = next
	b.UpdatedAt = now
	mutate(b, role, now)

	if err := deps.Bookings.UpdateStatus(ctx, b, expected); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			metrics.RecordTransition(string(action), "conflict")
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		return nil, err
	}

	log.Printf("booking: transition id=%s action=%s from=%s to=%s by=%s role=%s",
		b.ID, action, expected, next, session.UserID, role)
	metrics.RecordTransition(string(action), "ok")

	invalidateBookingCaches(ctx, deps.CacheStore, b)
	if deps.Notifications != nil {
		_ = deps.Notifications.NotifyTransition(ctx, b, action, role)
	}

	return b, nil
}
