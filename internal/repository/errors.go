package repository

import "errors"

// Errors raised inside atomic units of work. Services pass them through so
// handlers can map each kind to a distinct response; none of them is ever
// collapsed into a generic failure.
var (
	ErrNotFound            = errors.New("not found")
	ErrSlotTaken           = errors.New("slot already taken")
	ErrUserQuotaExceeded   = errors.New("user active booking quota exceeded")
	ErrResourceUnavailable = errors.New("resource not accepting bookings")
	ErrCourseFull          = errors.New("course session is full")
	ErrAlreadyEnrolled     = errors.New("user already enrolled in this session")
)
