package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a concurrent update won the race.
	ErrConflict = errors.New("conflict")
	// ErrSessionSubmitted is returned when a submitted wizard is mutated.
	ErrSessionSubmitted = errors.New("order already submitted")
	// ErrInvalidInput wraps user-fixable payload problems.
	ErrInvalidInput = errors.New("invalid input")
)
