package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
)

// ReceiptService handles receipt generation.
type ReceiptService struct {
	notificationService *NotificationService
	now                 func() time.Time
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(notificationService *NotificationService) *ReceiptService {
	return &ReceiptService{
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// GenerateReceiptRequest contains the parameters for generating a receipt.
type GenerateReceiptRequest struct {
	Booking     *domain.Booking
	ServiceName string
	Address     string
	Payment     *domain.Payment
}

// Build prices a receipt from the stored breakdown of a booking.
func (s *ReceiptService) Build(req GenerateReceiptRequest) (*domain.Receipt, error) {
	b := req.Booking
	if b == nil {
		return nil, ErrInvalidBookingID
	}

	breakdown := pricing.FromBooking(b)
	if err := breakdown.Verify(); err != nil {
		return nil, fmt.Errorf("booking %s: %w", b.ID, err)
	}

	paymentStatus := domain.PaymentStatusPending
	if req.Payment != nil {
		paymentStatus = req.Payment.Status
	}

	return &domain.Receipt{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("receipt:"+b.ID)).String(),
		BookingID:     b.ID,
		CustomerID:    b.CustomerID,
		CleanerID:     b.CleanerID,
		ServiceName:   req.ServiceName,
		Address:       req.Address,
		ScheduledAt:   b.StartsAt(),
		Duration:      b.Duration,
		ServicePrice:  breakdown.ServicePrice,
		AddOnsPrice:   breakdown.AddOnsPrice,
		TravelFee:     breakdown.TravelFee,
		Subtotal:      breakdown.Subtotal(),
		PlatformFee:   breakdown.PlatformFee,
		TotalPrice:    breakdown.TotalPrice,
		CleanerPayout: breakdown.CleanerPayout,
		PaymentStatus: paymentStatus,
		Status:        b.Status,
		CreatedAt:     s.now(),
	}, nil
}

// GenerateReceipt builds the receipt of a completed booking and notifies the customer.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, req GenerateReceiptRequest) (*domain.Receipt, error) {
	receipt, err := s.Build(req)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyReceiptReady(ctx, receipt)
	}

	return receipt, nil
}

// FormatReceipt formats the receipt as plain text (for email/print).
func (s *ReceiptService) FormatReceipt(receipt *domain.Receipt) string {
	var b strings.Builder
	line := strings.Repeat("-", 37)

	b.WriteString(strings.Repeat("=", 37) + "\n")
	b.WriteString("           CLEANING RECEIPT\n")
	b.WriteString(strings.Repeat("=", 37) + "\n")
	fmt.Fprintf(&b, "Receipt ID: %s\n", receipt.ID)
	fmt.Fprintf(&b, "Booking ID: %s\n", receipt.BookingID)
	fmt.Fprintf(&b, "Date:       %s\n\n", receipt.ScheduledAt.Format("Jan 02, 2006 15:04"))

	b.WriteString("JOB DETAILS\n" + line + "\n")
	fmt.Fprintf(&b, "Service:  %s\n", receipt.ServiceName)
	fmt.Fprintf(&b, "Address:  %s\n", receipt.Address)
	fmt.Fprintf(&b, "Duration: %s h\n\n", formatHours(receipt.Duration))

	b.WriteString("PRICE BREAKDOWN\n" + line + "\n")
	writeAmount(&b, "Service", receipt.ServicePrice)
	writeAmount(&b, "Add-ons", receipt.AddOnsPrice)
	writeAmount(&b, "Travel fee", receipt.TravelFee)
	b.WriteString(line + "\n")
	writeAmount(&b, "Subtotal", receipt.Subtotal)
	writeAmount(&b, "Platform fee", receipt.PlatformFee)
	b.WriteString(line + "\n")
	writeAmount(&b, "TOTAL", receipt.TotalPrice)

	b.WriteString("\nPAYMENT\n" + line + "\n")
	fmt.Fprintf(&b, "Status: %s\n", receipt.PaymentStatus)
	b.WriteString(strings.Repeat("=", 37) + "\n")

	return b.String()
}

func writeAmount(b *strings.Builder, label string, amount int64) {
	fmt.Fprintf(b, "%-14s %14s RON\n", label+":", pricing.FormatAmount(amount))
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
}
