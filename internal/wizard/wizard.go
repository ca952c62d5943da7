// Package wizard drives the multi-step booking flow: location size, service
// and add-ons, address, schedule, cleaner and confirmation.
package wizard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cleanhome/internal/domain"
)

// Backend is what the wizard needs from the booking system.
type Backend interface {
	AvailableCleaners(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailableCleaner, error)
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (string, error)
}

const (
	DefaultLookupTimeout = 5 * time.Second
	DefaultSubmitTimeout = 10 * time.Second
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithLookupTimeout bounds the cleaner availability lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(w *Wizard) { w.lookupTimeout = d }
}

// WithSubmitTimeout bounds the booking creation call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(w *Wizard) { w.submitTimeout = d }
}

// WithCountry restricts geocoded addresses to one ISO country code.
func WithCountry(code string) Option {
	return func(w *Wizard) { w.country = strings.ToUpper(code) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// Wizard is a single customer's booking flow. It is not safe for concurrent use.
type Wizard struct {
	state   State
	catalog *domain.Catalog
	backend Backend

	lookupTimeout time.Duration
	submitTimeout time.Duration
	country       string
	now           func() time.Time
}

// New creates a wizard at step 1 with nothing selected.
func New(catalog *domain.Catalog, backend Backend, opts ...Option) *Wizard {
	w := &Wizard{
		state:         NewState(),
		catalog:       catalog,
		backend:       backend,
		lookupTimeout: DefaultLookupTimeout,
		submitTimeout: DefaultSubmitTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Restore rebuilds a wizard from a persisted state.
func Restore(state State, catalog *domain.Catalog, backend Backend, opts ...Option) (*Wizard, error) {
	if !state.Step.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, state.Step)
	}
	w := New(catalog, backend, opts...)
	w.state = state.clone()
	return w, nil
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	return w.state.clone()
}

func (w *Wizard) Step() Step {
	return w.state.Step
}

// Prefill selects the default location size and the default (or first)
// saved address for a returning customer. The step is not changed.
func (w *Wizard) Prefill(addresses []*domain.Address) {
	if w.state.LocationSizeID == "" {
		if ls, ok := w.catalog.DefaultLocationSize(); ok {
			w.state.LocationSizeID = ls.ID
		}
	}
	if w.state.Address == nil {
		if addr := domain.DefaultAddress(addresses); addr != nil && addr.ID != "" {
			w.state.Address = &AddressSelection{Saved: true, Address: *addr}
		}
	}
}

// CanAdvance reports whether the current step's required selection is made.
func (w *Wizard) CanAdvance() bool {
	s := w.state
	switch s.Step {
	case StepLocation:
		return s.LocationSizeID != ""
	case StepService:
		return s.ServiceID != ""
	case StepAddress:
		return s.Address != nil
	case StepSchedule:
		return s.Date != "" && s.Time != ""
	case StepCleaner:
		return s.CleanerID != ""
	}
	return false
}

// Advance moves to the next step. Leaving the schedule step runs the
// availability lookup; a failed lookup leaves an empty candidate list and
// the move still happens.
func (w *Wizard) Advance(ctx context.Context) error {
	if w.state.Step == StepConfirm {
		return ErrLastStep
	}
	if !w.CanAdvance() {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.state.Step)
	}
	if w.state.Step == StepSchedule {
		w.lookup(ctx)
	}
	w.state.Step++
	return nil
}

// Retreat moves to the previous step.
func (w *Wizard) Retreat() error {
	if w.state.Step == StepLocation {
		return ErrFirstStep
	}
	w.state.Step--
	return nil
}

// RefreshCandidates re-runs the availability lookup while on the cleaner step.
func (w *Wizard) RefreshCandidates(ctx context.Context) error {
	if w.state.Step != StepCleaner {
		return ErrWrongStep
	}
	w.lookup(ctx)
	return nil
}

func (w *Wizard) lookup(ctx context.Context) {
	svc, _ := w.catalog.Service(w.state.ServiceID)
	query := domain.AvailabilityQuery{
		Date:      w.state.Date,
		StartTime: w.state.Time,
		Duration:  svc.BaseHours,
	}
	if w.state.Address != nil {
		query.City = w.state.Address.Address.City
		query.PostalCode = w.state.Address.Address.PostalCode
	}

	ctx, cancel := context.WithTimeout(ctx, w.lookupTimeout)
	defer cancel()

	candidates, err := w.backend.AvailableCleaners(ctx, query)
	if err != nil {
		w.state.Candidates = nil
		w.state.LookupError = err.Error()
	} else {
		w.state.Candidates = candidates
		w.state.LookupError = ""
	}
	if w.state.CleanerID != "" && w.candidate(w.state.CleanerID) == nil {
		w.state.CleanerID = ""
	}
}

func (w *Wizard) candidate(cleanerID string) *domain.AvailableCleaner {
	for i := range w.state.Candidates {
		if w.state.Candidates[i].CleanerID == cleanerID {
			return &w.state.Candidates[i]
		}
	}
	return nil
}

func (w *Wizard) requireStep(step Step) error {
	if w.state.Step != step {
		return fmt.Errorf("%w: at %s, need %s", ErrWrongStep, w.state.Step, step)
	}
	return nil
}

func (w *Wizard) clearCleaner() {
	w.state.CleanerID = ""
	w.state.Candidates = nil
	w.state.LookupError = ""
}

// SelectLocationSize picks the property size.
func (w *Wizard) SelectLocationSize(id string) error {
	if err := w.requireStep(StepLocation); err != nil {
		return err
	}
	if _, ok := w.catalog.LocationSize(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocationSize, id)
	}
	w.state.LocationSizeID = id
	return nil
}

// SelectService picks the cleaning service. A different service changes the
// duration, so any cleaner already chosen is dropped.
func (w *Wizard) SelectService(id string) error {
	if err := w.requireStep(StepService); err != nil {
		return err
	}
	if _, ok := w.catalog.Service(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownService, id)
	}
	if w.state.ServiceID != id {
		w.clearCleaner()
	}
	w.state.ServiceID = id
	return nil
}

// ToggleAddOn adds the add-on if absent and removes it otherwise.
func (w *Wizard) ToggleAddOn(id string) error {
	if err := w.requireStep(StepService); err != nil {
		return err
	}
	if _, ok := w.catalog.AddOn(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAddOn, id)
	}
	ids := make([]string, 0, len(w.state.AddOnIDs)+1)
	found := false
	for _, existing := range w.state.AddOnIDs {
		if existing == id {
			found = true
			continue
		}
		ids = append(ids, existing)
	}
	if !found {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	w.state.AddOnIDs = ids
	return nil
}

// SelectSavedAddress picks one of the customer's saved addresses.
func (w *Wizard) SelectSavedAddress(addr domain.Address) error {
	if err := w.requireStep(StepAddress); err != nil {
		return err
	}
	if addr.ID == "" {
		return fmt.Errorf("%w: saved address without id", ErrInvalidAddress)
	}
	w.setAddress(AddressSelection{Saved: true, Address: addr})
	return nil
}

// SelectGeocodedAddress uses an address returned by the geocoding provider.
func (w *Wizard) SelectGeocodedAddress(addr domain.Address) error {
	if err := w.requireStep(StepAddress); err != nil {
		return err
	}
	if err := w.checkGeocoded(addr); err != nil {
		return err
	}
	addr.ID = ""
	w.setAddress(AddressSelection{Address: addr})
	return nil
}

func (w *Wizard) checkGeocoded(addr domain.Address) error {
	var missing []string
	for name, v := range map[string]string{
		"street":      addr.Street,
		"city":        addr.City,
		"county":      addr.County,
		"postal_code": addr.PostalCode,
		"country":     addr.Country,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", ErrInvalidAddress, strings.Join(missing, ", "))
	}
	if w.country != "" && !strings.EqualFold(addr.Country, w.country) {
		return fmt.Errorf("%w: %s", ErrAddressCountry, addr.Country)
	}
	return nil
}

func (w *Wizard) setAddress(sel AddressSelection) {
	prev := w.state.Address
	if prev == nil || prev.Address.City != sel.Address.City || prev.Address.PostalCode != sel.Address.PostalCode {
		w.clearCleaner()
	}
	w.state.Address = &sel
}

// SelectSchedule sets the date ("2006-01-02") and start time ("15:04").
// Changing the slot invalidates the candidate list.
func (w *Wizard) SelectSchedule(date, clock string) error {
	if err := w.requireStep(StepSchedule); err != nil {
		return err
	}
	now := w.now()
	d, err := time.ParseInLocation(domain.DateLayout, date, now.Location())
	if err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidSchedule, date)
	}
	t, err := time.Parse(domain.TimeLayout, clock)
	if err != nil {
		return fmt.Errorf("%w: time %q", ErrInvalidSchedule, clock)
	}
	start := d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	if start.Before(now) {
		return fmt.Errorf("%w: %s %s is in the past", ErrInvalidSchedule, date, clock)
	}
	if w.state.Date != date || w.state.Time != clock {
		w.clearCleaner()
	}
	w.state.Date = date
	w.state.Time = clock
	return nil
}

// SelectCleaner picks one of the candidates returned by the lookup.
func (w *Wizard) SelectCleaner(cleanerID string) error {
	if err := w.requireStep(StepCleaner); err != nil {
		return err
	}
	if w.candidate(cleanerID) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCleaner, cleanerID)
	}
	w.state.CleanerID = cleanerID
	return nil
}

// SetFrequency sets the recurrence. Empty means one-time.
func (w *Wizard) SetFrequency(f domain.Frequency) error {
	parsed, ok := domain.ParseFrequency(string(f))
	if !ok {
		return fmt.Errorf("%w: frequency %q", ErrInvalidSchedule, f)
	}
	w.state.Frequency = parsed
	return nil
}

// SetNotes sets the customer notes sent with the booking.
func (w *Wizard) SetNotes(notes string) {
	w.state.CustomerNotes = strings.TrimSpace(notes)
}

// Submit creates the booking from the confirmed selections and returns its
// id. On failure the wizard stays on the confirmation step and the error is
// returned.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	if w.state.BookingID != "" {
		return w.state.BookingID, ErrAlreadySubmitted
	}
	if err := w.requireStep(StepConfirm); err != nil {
		return "", err
	}
	if w.Summary() == nil {
		return "", ErrStepIncomplete
	}

	input := w.Input()

	ctx, cancel := context.WithTimeout(ctx, w.submitTimeout)
	defer cancel()

	id, err := w.backend.CreateBooking(ctx, input)
	if err != nil {
		w.state.SubmitError = err.Error()
		return "", fmt.Errorf("create booking: %w", err)
	}
	w.state.SubmitError = ""
	w.state.BookingID = id
	return id, nil
}

// Input builds the creation request from the current selections.
func (w *Wizard) Input() domain.CreateBookingInput {
	s := w.state
	input := domain.CreateBookingInput{
		LocationSizeID: s.LocationSizeID,
		ServiceID:      s.ServiceID,
		AddOnIDs:       append([]string{}, s.AddOnIDs...),
		Date:           s.Date,
		Time:           s.Time,
		CleanerID:      s.CleanerID,
		Frequency:      s.Frequency,
		CustomerNotes:  s.CustomerNotes,
	}
	if s.Address != nil {
		if s.Address.Saved {
			input.AddressID = s.Address.Address.ID
		} else {
			addr := s.Address.Address
			input.Address = &addr
		}
	}
	return input
}
