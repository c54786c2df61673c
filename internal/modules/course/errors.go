package course

import "errors"

var (
	ErrEnrollDeadlinePassed = errors.New("enrollment deadline passed")
	ErrCancelWindowClosed   = errors.New("free cancellation window closed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation error")
)
