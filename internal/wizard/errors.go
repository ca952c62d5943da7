package wizard

import "errors"

var (
	ErrStepIncomplete      = errors.New("current step is incomplete")
	ErrFirstStep           = errors.New("already at the first step")
	ErrLastStep            = errors.New("already at the last step")
	ErrWrongStep           = errors.New("operation not available at this step")
	ErrInvalidStep         = errors.New("invalid step")
	ErrUnknownLocationSize = errors.New("unknown location size")
	ErrUnknownService      = errors.New("unknown service")
	ErrUnknownAddOn        = errors.New("unknown add-on")
	ErrUnknownCleaner      = errors.New("cleaner is not among the available candidates")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrAddressCountry      = errors.New("address outside the served country")
	ErrInvalidSchedule     = errors.New("invalid schedule")
	ErrAlreadySubmitted    = errors.New("booking already submitted")
)
