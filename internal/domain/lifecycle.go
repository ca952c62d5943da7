package domain

import (
	"errors"
	"fmt"
)

// Action is a named lifecycle mutation of a booking.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
)

// Actions lists every lifecycle action in display order.
var Actions = []Action{ActionConfirm, ActionStart, ActionComplete, ActionCancel, ActionNoShow}

var (
	ErrUnknownAction      = errors.New("unknown booking action")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrActionNotPermitted = errors.New("action not permitted for role")
)

type transitionRule struct {
	roles []Role
	next  BookingStatus
}

type transitionKey struct {
	from   BookingStatus
	action Action
}

// transitions is the only source of truth for which action may move a
// booking from which status, who may perform it and where it ends up.
var transitions = map[transitionKey]transitionRule{
	{BookingStatusPending, ActionConfirm}:     {roles: []Role{RoleCleaner}, next: BookingStatusConfirmed},
	{BookingStatusConfirmed, ActionStart}:     {roles: []Role{RoleCleaner}, next: BookingStatusInProgress},
	{BookingStatusInProgress, ActionComplete}: {roles: []Role{RoleCleaner}, next: BookingStatusCompleted},
	{BookingStatusPending, ActionCancel}:      {roles: []Role{RoleCustomer, RoleCleaner}, next: BookingStatusCancelled},
	{BookingStatusConfirmed, ActionCancel}:    {roles: []Role{RoleCustomer, RoleCleaner}, next: BookingStatusCancelled},
	{BookingStatusInProgress, ActionCancel}:   {roles: []Role{RoleCustomer, RoleCleaner}, next: BookingStatusCancelled},
	{BookingStatusConfirmed, ActionNoShow}:    {roles: []Role{RoleCleaner}, next: BookingStatusNoShow},
}

// statusRank orders statuses along the lifecycle. Side exits rank after
// every non-terminal status.
var statusRank = map[BookingStatus]int{
	BookingStatusPending:    0,
	BookingStatusConfirmed:  1,
	BookingStatusInProgress: 2,
	BookingStatusCompleted:  3,
	BookingStatusCancelled:  3,
	BookingStatusNoShow:     3,
}

// Rank returns the position of s in the lifecycle.
func (s BookingStatus) Rank() int {
	r, ok := statusRank[s]
	if !ok {
		return -1
	}
	return r
}

func isKnownAction(a Action) bool {
	for _, known := range Actions {
		if known == a {
			return true
		}
	}
	return false
}

// Transition returns the status reached when role performs action on a
// booking in status from.
func Transition(from BookingStatus, action Action, role Role) (BookingStatus, error) {
	if !isKnownAction(action) {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	rule, ok := transitions[transitionKey{from, action}]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, from)
	}
	for _, r := range rule.roles {
		if r == role {
			return rule.next, nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot %s", ErrActionNotPermitted, role, action)
}

// AllowedActions lists the actions role may perform on a booking in status s.
func AllowedActions(s BookingStatus, role Role) []Action {
	var out []Action
	for _, a := range Actions {
		if _, err := Transition(s, a, role); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Affordances are the per-action flags shown on a booking detail view.
type Affordances struct {
	CanConfirm  bool `json:"can_confirm"`
	CanStart    bool `json:"can_start"`
	CanComplete bool `json:"can_complete"`
	CanCancel   bool `json:"can_cancel"`
	CanNoShow   bool `json:"can_mark_no_show"`
}

// Allowed derives the affordances from the transition table.
func Allowed(s BookingStatus, role Role) Affordances {
	var a Affordances
	for _, action := range AllowedActions(s, role) {
		switch action {
		case ActionConfirm:
			a.CanConfirm = true
		case ActionStart:
			a.CanStart = true
		case ActionComplete:
			a.CanComplete = true
		case ActionCancel:
			a.CanCancel = true
		case ActionNoShow:
			a.CanNoShow = true
		}
	}
	return a
}
