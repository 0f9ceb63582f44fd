// Package common defines shared sentinel errors used across the service and
// API layers of the backend. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Signup / login errors.
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, malformed or expired token of either kind).
	ErrInvalidToken = errors.New("invalid token")

	// Password-reset lifecycle errors.
	ErrRateLimited       = errors.New("otp rate limited")
	ErrOTPInvalid        = errors.New("otp invalid")
	ErrOTPExpired        = errors.New("otp expired")
	ErrResetTokenInvalid = errors.New("reset token invalid")
)
