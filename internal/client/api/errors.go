package api

import "errors"

var (
	// ErrUnavailable marks connectivity failures: the request never got a
	// response. Recoverable; the event recorder falls back to local
	// counters on this error and never on any other.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks missing/invalid/expired credentials. Surfaced
	// to the caller, never retried automatically.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrQuotaExceeded marks a backend rejection over the daily limit.
	ErrQuotaExceeded = errors.New("daily shake limit reached")

	// ErrNotSupported marks an endpoint this backend deployment does not
	// expose. Callers treat it as a soft success with a skipped marker.
	ErrNotSupported = errors.New("not supported by backend")
)
