package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
)

// Error kinds. Service errors wrap exactly one of these; handlers map them to
// HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = policy.ErrForbidden
)

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// PhoneConflictError reports a phone that is already taken, and where.
type PhoneConflictError struct {
	Phone  string
	RoomID string // set when the phone belongs to a resident
	Source string // "resident" or "account"
}

func (e *PhoneConflictError) Error() string {
	if e.RoomID != "" {
		return fmt.Sprintf("phone %s is already used by a resident of room %s", e.Phone, e.RoomID)
	}
	return fmt.Sprintf("phone %s is already used by another %s", e.Phone, e.Source)
}

func (e *PhoneConflictError) Unwrap() error {
	return ErrConflict
}
