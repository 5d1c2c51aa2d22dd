// Package common defines shared constants and sentinel errors used across
// client and server layers of the shake tracker. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Quota enforcement: the user already performed the daily limit of
	// qualifying shakes for the current local calendar day.
	ErrorQuotaExceeded = errors.New("daily shake limit reached")

	// Transport/connectivity failures; recoverable, triggers the local
	// fallback path on the submission write.
	ErrorUnavailable = errors.New("server unavailable")

	// Endpoint absent on this backend deployment (404-equivalent).
	// Treated as a soft success upstream, never a user-facing failure.
	ErrorNotSupported = errors.New("not supported by backend")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrorAlreadyExists        = errors.New("already exists")
	ErrorInvalidLoginPassword = errors.New("invalid email/password")
)
