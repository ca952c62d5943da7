package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is the charge of a completed booking's total price, in bani.
// IdempotencyKey is "payment:<booking id>" so a booking is charged at most once.
type Payment struct {
	ID             string
	BookingID      string
	Amount         int64
	Status         PaymentStatus
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
