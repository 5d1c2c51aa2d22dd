// Package feedbacks persists user-submitted feedback reports.
package feedbacks

import (
	"context"
	"time"
)

// Feedback is one submitted report.
type Feedback struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Category  string
	Rating    int
	Timestamp time.Time
}

type Repository interface {
	// Insert stores a feedback report.
	Insert(ctx context.Context, f *Feedback) error

	// ByUser returns the user's reports, newest first.
	ByUser(ctx context.Context, userID string) ([]Feedback, error)
}
