package models

import "errors"

// Domain errors. Services return these (possibly wrapped); handlers match
// them with errors.Is and translate to HTTP status codes. Auth failures are
// never distinguished by string content at the boundary.
var (
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoteNotFound is returned for notes that do not exist and for notes
	// that exist in another tenant. The two cases must be indistinguishable.
	ErrNoteNotFound = errors.New("note not found")

	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNotOwnTenant means an admin tried to upgrade a tenant other than
	// their own.
	ErrNotOwnTenant = errors.New("can only upgrade own tenant")

	ErrAlreadyPro = errors.New("tenant already on pro plan")

	// ErrNoteLimitReached means the FREE plan note quota is exhausted.
	ErrNoteLimitReached = errors.New("note limit reached")

	ErrUserNotFound = errors.New("user not found")

	// ErrValidation marks missing or empty required input fields.
	ErrValidation = errors.New("validation failed")
)
