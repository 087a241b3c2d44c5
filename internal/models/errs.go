package models

import "errors"

// Domain error taxonomy. Services wrap these with context via fmt.Errorf("%w"),
// handlers map them to HTTP status codes at the boundary.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
