package domain

import "errors"

// Error kinds every operation can surface. Handlers map them to status
// codes; everything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)
