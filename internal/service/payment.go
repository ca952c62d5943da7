package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/repository"
)

// PSP is the interface for a Payment Service Provider.
type PSP interface {
	Charge(ctx context.Context, bookingID string, amount int64) (bool, error)
}

// MockPSP is a PSP that approves every charge.
type MockPSP struct{}

// NewMockPSP creates a new mock PSP.
func NewMockPSP() *MockPSP {
	return &MockPSP{}
}

// Charge simulates a payment charge. Always succeeds.
func (p *MockPSP) Charge(ctx context.Context, bookingID string, amount int64) (bool, error) {
	return true, nil
}

// PaymentService handles payment operations.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	psp         PSP
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, psp PSP) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		psp:         psp,
	}
}

// ProcessPaymentRequest contains the parameters for processing a payment.
type ProcessPaymentRequest struct {
	BookingID string
	Amount    int64 // bani
}

// ProcessPayment charges a completed booking. Repeated calls for the same
// booking return the first payment.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*domain.Payment, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}

	idempotencyKey := fmt.Sprintf("payment:%s", req.BookingID)

	existingPayment, err := s.paymentRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if existingPayment != nil {
		return existingPayment, nil
	}

	payment := &domain.Payment{
		ID:             uuid.New().String(),
		BookingID:      req.BookingID,
		Amount:         req.Amount,
		Status:         domain.PaymentStatusPending,
		IdempotencyKey: idempotencyKey,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	success, err := s.psp.Charge(ctx, req.BookingID, req.Amount)
	if err != nil {
		log.Printf("payment: psp charge failed booking_id=%s err=%v", req.BookingID, err)
		success = false
	}

	status := domain.PaymentStatusFailed
	if success {
		status = domain.PaymentStatusSuccess
	}
	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return nil, err
	}
	payment.Status = status
	metrics.RecordPayment(string(status))

	return payment, nil
}

// GetPayment returns the payment of a booking, or nil if none was made.
func (s *PaymentService) GetPayment(ctx context.Context, bookingID string) (*domain.Payment, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	return payment, err
}
