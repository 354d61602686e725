package service

import "errors"

// Error taxonomy. Handlers map these onto 400/401/403/404; anything else is
// treated as a storage failure and answered generically.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)
