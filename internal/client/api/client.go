// Package api implements the REST client for the shake tracker backend.
// It is the only layer that talks HTTP; transport failures are mapped to
// the sentinel errors in errors.go and raw wire timestamps are normalized
// here, so downstream code never sees either.
package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
)

// Client is the backend surface consumed by the client services.
type Client interface {
	// Register creates an account and returns a bearer token. When the
	// backend does not return a token directly, a follow-up login is
	// attempted with the same credentials.
	Register(ctx context.Context, name, email, password string) (string, error)

	// Login authenticates and returns a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// SendPasswordReset asks the backend to start a password reset for
	// the given email. The backend never discloses whether the account
	// exists.
	SendPasswordReset(ctx context.Context, email string) error

	// CurrentUser fetches the authoritative profile. Callers merge the
	// local overlay on top of the result.
	CurrentUser(ctx context.Context) (*models.Profile, error)

	// UpdateProfile patches profile fields server-side. Returns
	// ErrNotSupported when the backend has no such endpoint.
	UpdateProfile(ctx context.Context, fields map[string]string) (*models.Profile, error)

	// RecordShake submits one qualifying shake. Returns ErrQuotaExceeded
	// when the backend rejects it over the daily limit.
	RecordShake(ctx context.Context, count int, ts time.Time) (*models.Shake, error)

	// ShakesForDate returns the shakes recorded on the given local
	// calendar-date key; the authoritative daily count is its length.
	ShakesForDate(ctx context.Context, dateKey string) ([]models.Shake, error)

	// Shakes returns all recorded shakes; the authoritative total count
	// is its length.
	Shakes(ctx context.Context) ([]models.Shake, error)

	// RecentActivities lists recent activities of the given type, newest
	// first. A backend without the endpoint yields an empty list, not an
	// error.
	RecentActivities(ctx context.Context, activityType string, limit int) ([]models.Activity, error)

	// LogActivity records a feed entry. Absence of the endpoint is a
	// soft success.
	LogActivity(ctx context.Context, activityType, title string) error

	// SubmitFeedback sends a user feedback report.
	SubmitFeedback(ctx context.Context, fb models.Feedback) error

	// Ping checks backend liveness.
	Ping(ctx context.Context) error

	Close() error
}
