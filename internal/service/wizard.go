package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
	"cleanhome/internal/wizard"
)

// WizardService keeps server-side booking wizard drafts for customers.
type WizardService struct {
	drafts       redis.DraftStoreInterface
	catalog      *CatalogService
	addresses    repository.AddressRepository
	availability *AvailabilityService
	bookings     *BookingService
	options      []wizard.Option
	now          func() time.Time
}

// NewWizardService creates a new WizardService. opts configure every wizard
// it restores (country, lookup and submit timeouts).
func NewWizardService(
	drafts redis.DraftStoreInterface,
	catalog *CatalogService,
	addresses repository.AddressRepository,
	availability *AvailabilityService,
	bookings *BookingService,
	opts ...wizard.Option,
) *WizardService {
	return &WizardService{
		drafts:       drafts,
		catalog:      catalog,
		addresses:    addresses,
		availability: availability,
		bookings:     bookings,
		options:      opts,
		now:          time.Now,
	}
}

// DraftView is the client-facing view of a draft.
type DraftView struct {
	ID         string          `json:"id"`
	State      wizard.State    `json:"state"`
	Summary    *wizard.Summary `json:"summary"`
	CanAdvance bool            `json:"can_advance"`
}

// wizardBackend binds the wizard to the services on behalf of one customer.
type wizardBackend struct {
	svc     *WizardService
	session auth.Session
}

func (b wizardBackend) AvailableCleaners(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableCleaner, error) {
	return b.svc.availability.AvailableCleaners(ctx, q)
}

func (b wizardBackend) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (string, error) {
	booking, err := b.svc.bookings.CreateBooking(ctx, b.session, input)
	if err != nil {
		return "", err
	}
	return booking.ID, nil
}

// Start opens a new draft, prefilled with the default location size and the
// customer's default saved address.
func (s *WizardService) Start(ctx context.Context, session auth.Session) (*DraftView, error) {
	if session.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.ListByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	w := wizard.New(catalog, wizardBackend{svc: s, session: session}, s.options...)
	w.Prefill(addresses)

	draft := &redis.Draft{ID: uuid.New().String(), CustomerID: session.UserID}
	if err := s.save(ctx, draft, w); err != nil {
		return nil, err
	}
	metrics.RecordWizardEvent("started")
	return view(draft, w), nil
}

// Get returns a draft.
func (s *WizardService) Get(ctx context.Context, session auth.Session, draftID string) (*DraftView, error) {
	draft, w, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	return view(draft, w), nil
}

// SelectInput is a partial update of the current step's selections. Nil
// fields are left untouched.
type SelectInput struct {
	LocationSizeID *string         `json:"location_size_id"`
	ServiceID      *string         `json:"service_id"`
	AddressID      *string         `json:"address_id"`
	Address        *domain.Address `json:"address"`
	Date           *string         `json:"date"`
	Time           *string         `json:"time"`
	CleanerID      *string         `json:"cleaner_id"`
	Frequency      *string         `json:"frequency"`
	Notes          *string         `json:"notes"`
}

// Select applies selections to a draft.
func (s *WizardService) Select(ctx context.Context, session auth.Session, draftID string, input SelectInput) (*DraftView, error) {
	return s.mutate(ctx, session, draftID, func(w *wizard.Wizard) error {
		if input.LocationSizeID != nil {
			if err := w.SelectLocationSize(*input.LocationSizeID); err != nil {
				return err
			}
		}
		if input.ServiceID != nil {
			if err := w.SelectService(*input.ServiceID); err != nil {
				return err
			}
		}
		if input.AddressID != nil {
			addr, err := s.ownedAddress(ctx, session, *input.AddressID)
			if err != nil {
				return err
			}
			if err := w.SelectSavedAddress(*addr); err != nil {
				return err
			}
		}
		if input.Address != nil {
			if err := w.SelectGeocodedAddress(*input.Address); err != nil {
				return err
			}
		}
		if input.Date != nil || input.Time != nil {
			st := w.State()
			date, clock := st.Date, st.Time
			if input.Date != nil {
				date = *input.Date
			}
			if input.Time != nil {
				clock = *input.Time
			}
			if err := w.SelectSchedule(date, clock); err != nil {
				return err
			}
		}
		if input.CleanerID != nil {
			if err := w.SelectCleaner(*input.CleanerID); err != nil {
				return err
			}
		}
		if input.Frequency != nil {
			if err := w.SetFrequency(domain.Frequency(*input.Frequency)); err != nil {
				return err
			}
		}
		if input.Notes != nil {
			w.SetNotes(*input.Notes)
		}
		return nil
	})
}

// ToggleAddOn adds or removes an add-on on the service step.
func (s *WizardService) ToggleAddOn(ctx context.Context, session auth.Session, draftID, addOnID string) (*DraftView, error) {
	return s.mutate(ctx, session, draftID, func(w *wizard.Wizard) error {
		return w.ToggleAddOn(addOnID)
	})
}

// Next advances the draft one step.
func (s *WizardService) Next(ctx context.Context, session auth.Session, draftID string) (*DraftView, error) {
	return s.mutate(ctx, session, draftID, func(w *wizard.Wizard) error {
		return w.Advance(ctx)
	})
}

// Back moves the draft one step back.
func (s *WizardService) Back(ctx context.Context, session auth.Session, draftID string) (*DraftView, error) {
	return s.mutate(ctx, session, draftID, func(w *wizard.Wizard) error {
		return w.Retreat()
	})
}

// RefreshCandidates re-runs the availability lookup on the cleaner step.
func (s *WizardService) RefreshCandidates(ctx context.Context, session auth.Session, draftID string) (*DraftView, error) {
	return s.mutate(ctx, session, draftID, func(w *wizard.Wizard) error {
		return w.RefreshCandidates(ctx)
	})
}

// Submit creates the booking. The submission outcome is stored on the draft
// either way; a failed submission is also returned as an error.
func (s *WizardService) Submit(ctx context.Context, session auth.Session, draftID string) (*DraftView, error) {
	draft, w, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}

	_, submitErr := w.Submit(ctx)
	if submitErr != nil && errors.Is(submitErr, wizard.ErrAlreadySubmitted) {
		return view(draft, w), submitErr
	}

	if err := s.save(ctx, draft, w); err != nil {
		return nil, err
	}
	if submitErr != nil {
		metrics.RecordWizardEvent("submit_failed")
		return view(draft, w), submitErr
	}
	metrics.RecordWizardEvent("submitted")
	return view(draft, w), nil
}

// Discard deletes a draft.
func (s *WizardService) Discard(ctx context.Context, session auth.Session, draftID string) error {
	if _, _, err := s.load(ctx, session, draftID); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, draftID)
}

func (s *WizardService) mutate(ctx context.Context, session auth.Session, draftID string, fn func(w *wizard.Wizard) error) (*DraftView, error) {
	draft, w, err := s.load(ctx, session, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.save(ctx, draft, w); err != nil {
		return nil, err
	}
	return view(draft, w), nil
}

func (s *WizardService) load(ctx context.Context, session auth.Session, draftID string) (*redis.Draft, *wizard.Wizard, error) {
	if session.Role != domain.RoleCustomer {
		return nil, nil, ErrRoleNotAllowed
	}

	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}
	if draft.CustomerID != session.UserID {
		return nil, nil, ErrDraftNotOwned
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	w, err := wizard.Restore(draft.State, catalog, wizardBackend{svc: s, session: session}, s.options...)
	if err != nil {
		return nil, nil, err
	}
	return draft, w, nil
}

func (s *WizardService) save(ctx context.Context, draft *redis.Draft, w *wizard.Wizard) error {
	draft.State = w.State()
	draft.UpdatedAt = s.now()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *WizardService) ownedAddress(ctx context.Context, session auth.Session, id string) (*domain.Address, error) {
	addr, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr.UserID != session.UserID {
		return nil, ErrAddressNotOwned
	}
	return addr, nil
}

func view(draft *redis.Draft, w *wizard.Wizard) *DraftView {
	return &DraftView{
		ID:         draft.ID,
		State:      w.State(),
		Summary:    w.Summary(),
		CanAdvance: w.CanAdvance(),
	}
}
