package wizard

import (
	"encoding/json"
	"fmt"

	"cleanhome/internal/domain"
)

// Step is a 1-based position in the booking flow.
type Step int

const (
	StepLocation Step = iota + 1
	StepService
	StepAddress
	StepSchedule
	StepCleaner
	StepConfirm
)

var stepNames = map[Step]string{
	StepLocation: "location",
	StepService:  "service",
	StepAddress:  "address",
	StepSchedule: "schedule",
	StepCleaner:  "cleaner",
	StepConfirm:  "confirm",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool {
	return s >= StepLocation && s <= StepConfirm
}

// AddressSelection is either a saved address of the customer or an address
// freshly returned by the geocoding provider.
type AddressSelection struct {
	Saved   bool           `json:"saved"`
	Address domain.Address `json:"address"`
}

// State is the serialisable state of a booking wizard.
type State struct {
	Step           Step                      `json:"step"`
	LocationSizeID string                    `json:"location_size_id,omitempty"`
	ServiceID      string                    `json:"service_id,omitempty"`
	AddOnIDs       []string                  `json:"add_on_ids,omitempty"`
	Address        *AddressSelection         `json:"address,omitempty"`
	Date           string                    `json:"date,omitempty"`
	Time           string                    `json:"time,omitempty"`
	CleanerID      string                    `json:"cleaner_id,omitempty"`
	Candidates     []domain.AvailableCleaner `json:"candidates,omitempty"`
	LookupError    string                    `json:"lookup_error,omitempty"`
	Frequency      domain.Frequency          `json:"frequency,omitempty"`
	CustomerNotes  string                    `json:"customer_notes,omitempty"`
	BookingID      string                    `json:"booking_id,omitempty"`
	SubmitError    string                    `json:"submit_error,omitempty"`
}

// NewState returns the initial state: step 1, nothing selected.
func NewState() State {
	return State{Step: StepLocation}
}

func (s State) clone() State {
	out := s
	out.AddOnIDs = append([]string(nil), s.AddOnIDs...)
	out.Candidates = append([]domain.AvailableCleaner(nil), s.Candidates...)
	if s.Address != nil {
		addr := *s.Address
		out.Address = &addr
	}
	return out
}

// Marshal encodes the state for persistence.
func (s State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalState decodes a persisted state.
func UnmarshalState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	if !s.Step.Valid() {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidStep, s.Step)
	}
	return s, nil
}
