// Package shakes persists recorded shake events per user.
package shakes

import (
	"context"
	"time"
)

// Shake is one stored shake event.
type Shake struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Reward    string
}

type Repository interface {
	// Insert stores a shake. Inserting an existing id is a no-op, which
	// makes retried submissions idempotent.
	Insert(ctx context.Context, s *Shake) error

	// ByUser returns the user's shakes, newest first.
	ByUser(ctx context.Context, userID string) ([]Shake, error)

	// ByUserAndRange returns the user's shakes with from <= ts < to,
	// newest first.
	ByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Shake, error)

	// CountInRange counts the user's shakes with from <= ts < to.
	CountInRange(ctx context.Context, userID string, from, to time.Time) (int, error)
}
