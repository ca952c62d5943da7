package domain

import "time"

// Receipt is the priced statement of a booking.
type Receipt struct {
	ID            string
	BookingID     string
	CustomerID    string
	CleanerID     string
	ServiceName   string
	Address       string
	ScheduledAt   time.Time
	Duration      float64
	ServicePrice  int64
	AddOnsPrice   int64
	TravelFee     int64
	Subtotal      int64
	PlatformFee   int64
	TotalPrice    int64
	CleanerPayout int64
	PaymentStatus PaymentStatus
	Status        BookingStatus
	CreatedAt     time.Time
}
