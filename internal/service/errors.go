package service

import "errors"

var (
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRoleNotAllowed is returned when the caller's role cannot perform the operation.
	ErrRoleNotAllowed = errors.New("operation not allowed for this role")

	// ErrNotBookingParty is returned when the caller is neither the customer nor the cleaner of a booking.
	ErrNotBookingParty = errors.New("caller is not a party of this booking")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrUnknownCatalogItem is returned when a location size, service or add-on does not exist.
	ErrUnknownCatalogItem = errors.New("unknown catalog item")

	// ErrScheduleInPast is returned when the requested slot has already started.
	ErrScheduleInPast = errors.New("scheduled time is in the past")

	// ErrAddressNotOwned is returned when a saved address belongs to another user.
	ErrAddressNotOwned = errors.New("address does not belong to the caller")

	// ErrAddressCountry is returned when an address is outside the served country.
	ErrAddressCountry = errors.New("address outside the served country")

	// ErrCleanerUnavailable is returned when the cleaner cannot take the slot.
	ErrCleanerUnavailable = errors.New("cleaner not available for this slot")

	// ErrBookingBusy is returned when another request holds the booking or cleaner lock.
	ErrBookingBusy = errors.New("booking is being modified by another request")

	// ErrConcurrentUpdate is returned when the booking status changed between read and write.
	ErrConcurrentUpdate = errors.New("booking was updated concurrently")

	// ErrRateOutOfRange is returned when an hourly rate is outside the tier's range.
	ErrRateOutOfRange = errors.New("hourly rate outside the allowed range for the tier")

	// ErrUnknownTier is returned when a tier has no rate range.
	ErrUnknownTier = errors.New("unknown cleaner tier")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidPaymentAmount is returned when payment amount is invalid.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDraftNotOwned is returned when a wizard draft belongs to another customer.
	ErrDraftNotOwned = errors.New("draft does not belong to the caller")
)
