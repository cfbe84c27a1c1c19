package popup

import "errors"

var (
	// ErrUnknownCategory is returned when a mutation names a collection other
	// than switches, options or actions.
	ErrUnknownCategory = errors.New("unknown popup category")
	ErrUnknownPopup    = errors.New("unknown popup")
	// ErrDuplicateTrigger is returned by Register when a spec binds the same
	// trigger twice within one category, and by Rename onto a bound trigger.
	ErrDuplicateTrigger = errors.New("duplicate trigger")
	ErrInvalidSpec      = errors.New("invalid popup spec")
)
