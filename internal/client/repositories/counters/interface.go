// Package counters persists the quota window and the fallback counters.
// The two live in separate tables: the window backs day-to-day quota
// enforcement, the fallback counters are the source of truth only while
// the backend is unreachable.
package counters

import (
	"context"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
)

type Repository interface {
	// Window returns the stored quota window. A never-written window has
	// an empty DateKey, which every reader must treat as stale.
	Window(ctx context.Context) (models.QuotaWindow, error)

	// SetWindow persists the quota window.
	SetWindow(ctx context.Context, w models.QuotaWindow) error

	// Fallback returns the stored fallback counters.
	Fallback(ctx context.Context) (models.FallbackCounters, error)

	// SetFallback persists the fallback counters.
	SetFallback(ctx context.Context, f models.FallbackCounters) error
}
