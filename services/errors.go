package services

import "errors"

// Error taxonomy shared by every mutation path. Services wrap these
// with fmt.Errorf("%w: ...") so controllers can classify with
// errors.Is while keeping the specific message. Handlers validate
// first and write last, so a failed check never leaves partial state.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)
