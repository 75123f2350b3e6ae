// Package apperr holds the domain error taxonomy. Services return these
// sentinels (possibly wrapped); handlers map them to HTTP statuses.
package apperr

import "errors"

var (
	// ErrNotFound covers both "no such record" and "record owned by someone
	// else": existence of another user's event is never disclosed.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is reserved for actors whose identity is known to the
	// resource. The owner-only model never hits it on event access; it backs
	// future shared-access grants.
	ErrForbidden = errors.New("forbidden")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)
