// Package shakes keeps a local history of recorded shake events so the
// history view stays usable while the backend is unreachable.
package shakes

import (
	"context"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
)

type Repository interface {
	// Insert stores a shake record. Records are immutable; inserting an
	// existing id is a no-op.
	Insert(ctx context.Context, s *models.Shake) error

	// Recent returns up to limit shakes ordered by timestamp, newest first.
	Recent(ctx context.Context, limit int) ([]models.Shake, error)

	// CountByDate returns the number of stored shakes whose timestamp
	// falls on the given local calendar-date key.
	CountByDate(ctx context.Context, dateKey string) (int, error)
}
