package booking

import "errors"

// Validation and policy rejections raised before any storage access (except
// ErrCancelWindowClosed and ErrInvalidTransition, which need the stored
// booking). Conflict-class errors come from the repository package.
var (
	ErrValidation         = errors.New("validation error")
	ErrOutOfBusinessHours = errors.New("slot outside business hours")
	ErrInvalidDuration    = errors.New("slot duration out of bounds")
	ErrSlotInPast         = errors.New("slot start is in the past")
	ErrCancelWindowClosed = errors.New("free cancellation window closed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
)
