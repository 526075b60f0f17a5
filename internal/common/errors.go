// Package common defines shared constants and sentinel errors used across
// client and server layers of NoteVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation error")
	ErrTooManyRequests = errors.New("too many requests")

	// Credential errors.
	ErrEmptyPassword = errors.New("empty password")
	ErrWeakSecret    = errors.New("secret key must be at least 32 bytes")

	// Token errors. Every token validation failure matches ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
