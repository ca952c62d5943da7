// Package pricing computes the authoritative price breakdown of a booking.
// All amounts are int64 minor currency units (bani).
package pricing

import (
	"errors"
	"fmt"
	"math"

	"cleanhome/internal/domain"
)

// PlatformFeeBasisPoints is the platform commission: 15% of the subtotal.
const PlatformFeeBasisPoints = 1500

// ErrInconsistentBreakdown is returned by Verify when an identity does not hold.
var ErrInconsistentBreakdown = errors.New("inconsistent price breakdown")

// Breakdown is the server-side priced view of a booking.
type Breakdown struct {
	ServicePrice  int64 `json:"service_price"`
	AddOnsPrice   int64 `json:"add_ons_price"`
	TravelFee     int64 `json:"travel_fee"`
	PlatformFee   int64 `json:"platform_fee"`
	TotalPrice    int64 `json:"total_price"`
	CleanerPayout int64 `json:"cleaner_payout"`
}

// Compute derives the fee, total and payout from the three priced components.
func Compute(servicePrice, addOnsPrice, travelFee int64) Breakdown {
	subtotal := servicePrice + addOnsPrice + travelFee
	fee := PlatformFee(subtotal)
	total := subtotal + fee
	return Breakdown{
		ServicePrice:  servicePrice,
		AddOnsPrice:   addOnsPrice,
		TravelFee:     travelFee,
		PlatformFee:   fee,
		TotalPrice:    total,
		CleanerPayout: total - fee,
	}
}

// PlatformFee returns 15% of subtotal rounded half-up to the minor unit.
func PlatformFee(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	return (subtotal*PlatformFeeBasisPoints + 5000) / 10000
}

// Subtotal is the pre-fee amount shown as its own line on receipts.
func (b Breakdown) Subtotal() int64 {
	return b.ServicePrice + b.AddOnsPrice + b.TravelFee
}

// Verify checks the pricing identities of b.
func (b Breakdown) Verify() error {
	if b.TotalPrice != b.Subtotal()+b.PlatformFee {
		return fmt.Errorf("%w: total %d != subtotal %d + fee %d", ErrInconsistentBreakdown, b.TotalPrice, b.Subtotal(), b.PlatformFee)
	}
	if b.PlatformFee != PlatformFee(b.Subtotal()) {
		return fmt.Errorf("%w: fee %d is not 15%% of %d", ErrInconsistentBreakdown, b.PlatformFee, b.Subtotal())
	}
	if b.CleanerPayout != b.TotalPrice-b.PlatformFee {
		return fmt.Errorf("%w: payout %d != total %d - fee %d", ErrInconsistentBreakdown, b.CleanerPayout, b.TotalPrice, b.PlatformFee)
	}
	return nil
}

// Apply copies the breakdown onto a booking.
func (b Breakdown) Apply(booking *domain.Booking) {
	booking.ServicePrice = b.ServicePrice
	booking.AddOnsPrice = b.AddOnsPrice
	booking.TravelFee = b.TravelFee
	booking.PlatformFee = b.PlatformFee
	booking.TotalPrice = b.TotalPrice
	booking.CleanerPayout = b.CleanerPayout
}

// FromBooking reads the stored breakdown of a booking.
func FromBooking(booking *domain.Booking) Breakdown {
	return Breakdown{
		ServicePrice:  booking.ServicePrice,
		AddOnsPrice:   booking.AddOnsPrice,
		TravelFee:     booking.TravelFee,
		PlatformFee:   booking.PlatformFee,
		TotalPrice:    booking.TotalPrice,
		CleanerPayout: booking.CleanerPayout,
	}
}

// ServicePrice is the cleaner's hourly rate applied to the service base hours.
func ServicePrice(baseHours float64, hourlyRate int64) int64 {
	return HoursCost(baseHours, hourlyRate)
}

// HoursCost returns round(hours * hourlyRate).
func HoursCost(hours float64, hourlyRate int64) int64 {
	return int64(math.Round(hours * float64(hourlyRate)))
}

// AddOnsPrice sums the fixed prices of the selected add-ons.
func AddOnsPrice(addOns []domain.AddOn) int64 {
	var total int64
	for _, a := range addOns {
		total += a.Price
	}
	return total
}
