package domain

import "errors"

// Client-observed error taxonomy shared by the REST client, the dispatcher and
// the web layer.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnverifiedEmail = errors.New("email not verified")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInFlight        = errors.New("operation already in progress")
)
