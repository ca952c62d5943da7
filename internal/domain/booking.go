package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// IsActive reports whether the booking still occupies the cleaner's calendar.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return st, true
	}
	return "", false
}

// ServiceType is the kind of cleaning performed.
type ServiceType string

const (
	ServiceTypeGeneral   ServiceType = "GENERAL"
	ServiceTypeDeep      ServiceType = "DEEP"
	ServiceTypeMoveInOut ServiceType = "MOVE_IN_OUT"
)

// Frequency is the recurrence of a booking.
type Frequency string

const (
	FrequencyOneTime  Frequency = "ONE_TIME"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

// ParseFrequency validates a frequency string. Empty means one-time.
func ParseFrequency(s string) (Frequency, bool) {
	switch f := Frequency(s); f {
	case FrequencyOneTime, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return f, true
	case "":
		return FrequencyOneTime, true
	}
	return "", false
}

// CancellationReason explains why a booking was cancelled.
type CancellationReason string

const (
	CancellationCustomerRequest CancellationReason = "CUSTOMER_REQUEST"
	CancellationCleanerRequest  CancellationReason = "CLEANER_REQUEST"
	CancellationEmergency       CancellationReason = "EMERGENCY"
	CancellationWeather         CancellationReason = "WEATHER"
	CancellationOther           CancellationReason = "OTHER"
)

// ParseCancellationReason validates a cancellation reason string.
func ParseCancellationReason(s string) (CancellationReason, bool) {
	switch r := CancellationReason(s); r {
	case CancellationCustomerRequest, CancellationCleanerRequest, CancellationEmergency,
		CancellationWeather, CancellationOther:
		return r, true
	}
	return "", false
}

// DateLayout is the wire format of scheduled dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format of scheduled start times.
const TimeLayout = "15:04"

// Booking represents a cleaning job booked by a customer with a cleaner.
// All prices are integer minor currency units (bani).
type Booking struct {
	ID               string
	CustomerID       string
	CleanerID        string
	CleanerProfileID string
	CleanerTier      CleanerTier
	CleanerRating    float64
	LocationSizeID   string
	ServiceID        string
	ServiceType      ServiceType
	Frequency        Frequency
	AddOnIDs         []string
	ScheduledDate    time.Time
	ScheduledTime    string
	Duration         float64 // hours
	AddressID        string

	CleanerHourlyRate int64
	ServicePrice      int64
	AddOnsPrice       int64
	TravelFee         int64
	PlatformFee       int64
	TotalPrice        int64
	CleanerPayout     int64

	Status             BookingStatus
	ConfirmedAt        time.Time
	StartedAt          time.Time
	CompletedAt        time.Time
	CancelledAt        time.Time
	CancellationReason CancellationReason
	CancellationNote   string
	CancelledByID      string
	CancelledByRole    Role

	CustomerNotes string
	CleanerNotes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt returns the scheduled start as an absolute time in the location of ScheduledDate.
func (b *Booking) StartsAt() time.Time {
	t, err := time.Parse(TimeLayout, b.ScheduledTime)
	if err != nil {
		return b.ScheduledDate
	}
	y, m, d := b.ScheduledDate.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, b.ScheduledDate.Location())
}

// EndsAt returns the scheduled end of the job.
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt().Add(HoursToDuration(b.Duration))
}

// IsUpcoming reports whether the booking belongs in the "Upcoming" list.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.Status.IsActive() && !b.EndsAt().Before(now)
}

// Subtotal is the pre-fee amount: service + add-ons + travel.
func (b *Booking) Subtotal() int64 {
	return b.ServicePrice + b.AddOnsPrice + b.TravelFee
}

// HoursToDuration converts fractional hours to a time.Duration.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status *BookingStatus
	Limit  int
	Offset int
}

// CreateBookingInput is the payload submitted at the end of the booking flow.
// Exactly one of AddressID and Address must be set.
type CreateBookingInput struct {
	LocationSizeID string    `json:"location_size_id" validate:"required"`
	ServiceID      string    `json:"service_id" validate:"required"`
	AddOnIDs       []string  `json:"add_on_ids" validate:"dive,required"`
	Date           string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string    `json:"time" validate:"required,datetime=15:04"`
	CleanerID      string    `json:"cleaner_id" validate:"required"`
	AddressID      string    `json:"address_id,omitempty" validate:"required_without=Address,excluded_with=Address"`
	Address        *Address  `json:"address,omitempty" validate:"required_without=AddressID"`
	Frequency      Frequency `json:"frequency,omitempty"`
	CustomerNotes  string    `json:"customer_notes,omitempty" validate:"max=2000"`
}
