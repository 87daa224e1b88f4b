package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Package-level sentinels wrap one of these,
// so callers can match either the precise error or its kind with errors.Is.
var (
	// ErrSlotUnavailable the requested window overlaps an occupying booking
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrInvalidTimeWindow start >= end, or malformed date/time input
	ErrInvalidTimeWindow = errors.New("invalid time window")
	// ErrPolicyViolation the action is outside its allowed window or state
	ErrPolicyViolation = errors.New("policy violation")
	// ErrNotFound playground, slot or booking does not resolve
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied actor is neither customer, owner nor admin
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidInput request data is missing or malformed
	ErrInvalidInput = errors.New("invalid input")
)

// Policy violations with a dedicated error code at the boundary.
var (
	// ErrTooLate lead time before the booking start is not met
	ErrTooLate = fmt.Errorf("%w: not enough notice before start", ErrPolicyViolation)
	// ErrTooFar the date is beyond the playground's advance-booking window
	ErrTooFar = fmt.Errorf("%w: beyond advance booking window", ErrPolicyViolation)
	// ErrIllegalTransition the status machine does not allow the transition
	ErrIllegalTransition = fmt.Errorf("%w: illegal status transition", ErrPolicyViolation)
)

// Error is a package-level error of a given kind. Its message is shown to
// callers as is, errors.Is matches both the error itself and its kind.
type Error struct {
	Kind    error
	Message string
}

// NewError creates an error of kind with a caller-facing message
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
