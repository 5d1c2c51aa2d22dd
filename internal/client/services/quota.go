// Package services contains the application services of the shake tracker
// client: quota-window tracking, the event recorder with its offline
// fallback, count reconciliation, profile overlay management, and auth.
package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/counters"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// QuotaTracker owns the daily quota window: a count of qualifying shakes
// attributed to one local calendar-date key. A window whose key is not
// today is stale and reads as zero; the first check after midnight rolls
// it over and persists the reset immediately.
type QuotaTracker struct {
	repo   counters.Repository
	limit  int
	now    func() time.Time
	cached atomic.Value // last models.QuotaWindow seen or written
}

func NewQuotaTracker(repo counters.Repository, limit int) *QuotaTracker {
	return &QuotaTracker{repo: repo, limit: limit, now: time.Now}
}

// Limit returns the fixed daily limit.
func (t *QuotaTracker) Limit() int { return t.limit }

// Window returns the current quota window, rolling it over first when the
// stored date key is stale. Roll-over is idempotent: a second call on the
// same day changes nothing.
func (t *QuotaTracker) Window(ctx context.Context) (models.QuotaWindow, error) {
	w, err := t.repo.Window(ctx)
	if err != nil {
		return models.QuotaWindow{}, fmt.Errorf("failed to load quota window: %w", err)
	}

	today := timex.DateKey(t.now())
	if w.DateKey == today {
		t.cached.Store(w)
		return w, nil
	}

	w = models.QuotaWindow{DateKey: today, Count: 0}
	if err := t.repo.SetWindow(ctx, w); err != nil {
		return models.QuotaWindow{}, fmt.Errorf("failed to roll over quota window: %w", err)
	}
	t.cached.Store(w)
	return w, nil
}

// Exhausted reports whether the last window this tracker saw leaves no
// shakes for today. It reads in-memory state only, so high-frequency
// callers such as the motion detector can poll it without a storage
// round-trip per sample. A window from a previous day, or none at all,
// reads as not exhausted.
func (t *QuotaTracker) Exhausted() bool {
	w, ok := t.cached.Load().(models.QuotaWindow)
	if !ok {
		return false
	}
	return w.DateKey == timex.DateKey(t.now()) && w.Count >= t.limit
}

// Remaining returns how many shakes are left today after any pending
// roll-over check.
func (t *QuotaTracker) Remaining(ctx context.Context) (int, error) {
	w, err := t.Window(ctx)
	if err != nil {
		return 0, err
	}
	remaining := t.limit - w.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Increment adds n to today's count and persists the window.
func (t *QuotaTracker) Increment(ctx context.Context, n int) (models.QuotaWindow, error) {
	w, err := t.Window(ctx)
	if err != nil {
		return models.QuotaWindow{}, err
	}
	w.Count += n
	if err := t.repo.SetWindow(ctx, w); err != nil {
		return models.QuotaWindow{}, fmt.Errorf("failed to store quota window: %w", err)
	}
	t.cached.Store(w)
	return w, nil
}

// SetCount corrects today's count to an authoritative value.
func (t *QuotaTracker) SetCount(ctx context.Context, count int) error {
	w := models.QuotaWindow{DateKey: timex.DateKey(t.now()), Count: count}
	if err := t.repo.SetWindow(ctx, w); err != nil {
		return fmt.Errorf("failed to store quota window: %w", err)
	}
	t.cached.Store(w)
	return nil
}

// TimeUntilReset reports whole hours and minutes until the next local
// midnight, for the countdown display. Pure; the periodic UI tick calls
// this and never mutates window state.
func (t *QuotaTracker) TimeUntilReset(now time.Time) (hours, minutes int) {
	return timex.UntilMidnight(now)
}
