package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCodeExists indicates the short code is already taken.
	ErrCodeExists = errors.New("short code already exists")

	// ErrDuplicateEmail indicates another user already has the email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
