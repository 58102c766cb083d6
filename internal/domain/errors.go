package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrNoEligibleLocation = errors.New("no eligible location")
	ErrInconsistentState  = errors.New("inconsistent inventory state")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnavailable        = errors.New("backend not configured")
)
