// Package activities persists the per-user activity feed.
package activities

import (
	"context"
	"time"
)

// Activity is one feed entry.
type Activity struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Timestamp time.Time
}

type Repository interface {
	// Insert stores a feed entry.
	Insert(ctx context.Context, a *Activity) error

	// Recent returns up to limit entries of the given type for the user,
	// newest first. An empty type matches all entries.
	Recent(ctx context.Context, userID, activityType string, limit int) ([]Activity, error)
}
