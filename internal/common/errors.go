// Package common defines shared constants and sentinel errors used across
// client and server layers of authkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors. ErrInvalidCredentials never says which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Startup errors.
	ErrMisconfigured = errors.New("auth config invalid")
)
