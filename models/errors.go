package models

import "errors"

// Sentinel errors for the donation and identity stores. Handlers match these
// with errors.Is and translate them to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidReference  = errors.New("referenced user is not a restaurant")
	ErrInvalidState      = errors.New("donation is not available")
	ErrInvalidClaimer    = errors.New("claimer must be an ngo or society user")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrMalformedID       = errors.New("invalid id")
)
