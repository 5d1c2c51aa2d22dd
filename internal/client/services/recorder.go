package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/counters"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/shakes"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
	"github.com/google/uuid"
)

// ShakeRecorder submits qualifying shake events. At most one submission is
// in flight per recorder: the guard is a single-slot atomic flag, released
// on every exit path. When the backend is unreachable the shake is counted
// locally and surfaced as a success; those counts are replaced the next
// time a real backend count is obtained.
type ShakeRecorder struct {
	client   api.Client
	quota    *QuotaTracker
	counters counters.Repository
	history  shakes.Repository
	log      logging.Logger
	inFlight atomic.Bool
	now      func() time.Time
}

func NewShakeRecorder(client api.Client, quota *QuotaTracker, counterRepo counters.Repository, history shakes.Repository, log logging.Logger) *ShakeRecorder {
	return &ShakeRecorder{
		client:   client,
		quota:    quota,
		counters: counterRepo,
		history:  history,
		log:      log,
		now:      time.Now,
	}
}

// InFlight reports whether a submission is currently in flight. Checked
// synchronously by the motion detector; no network round trip.
func (r *ShakeRecorder) InFlight() bool {
	return r.inFlight.Load()
}

// Record submits one shake.
//
// A call while another submission is in flight is a no-op and returns
// (nil, nil). Otherwise it returns the resulting shake record, or
// api.ErrQuotaExceeded when the daily limit is reached, or the submission
// error. A connectivity failure on the submission itself is not an error:
// the shake is recorded against the local fallback counters and returned
// as a locally-simulated record.
func (r *ShakeRecorder) Record(ctx context.Context) (*models.Shake, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer r.inFlight.Store(false)

	// Local enforcement after any pending roll-over.
	w, err := r.quota.Window(ctx)
	if err != nil {
		return nil, err
	}
	if w.Count >= r.quota.Limit() {
		return nil, api.ErrQuotaExceeded
	}

	// Server-synced pre-check, best effort: another device may already
	// have used up today's quota. A failed pre-check proceeds; the
	// backend enforces the limit again at submission time.
	today := timex.DateKey(r.now())
	if remote, err := r.client.ShakesForDate(ctx, today); err == nil {
		if len(remote) >= r.quota.Limit() {
			r.correctDailyCount(ctx, len(remote))
			return nil, api.ErrQuotaExceeded
		}
		if len(remote) != w.Count {
			r.correctDailyCount(ctx, len(remote))
		}
	}

	shake, err := r.client.RecordShake(ctx, 1, r.now())
	switch {
	case err == nil:
		return r.finishOnline(ctx, today, shake)

	case errors.Is(err, api.ErrQuotaExceeded):
		if remote, ferr := r.client.ShakesForDate(ctx, today); ferr == nil {
			r.correctDailyCount(ctx, len(remote))
		}
		return nil, api.ErrQuotaExceeded

	case errors.Is(err, api.ErrUnavailable):
		return r.finishOffline(ctx)

	default:
		// auth errors and anything unclassified: no counter mutation
		return nil, err
	}
}

func (r *ShakeRecorder) finishOnline(ctx context.Context, today string, shake *models.Shake) (*models.Shake, error) {
	// Re-fetching the authoritative daily count beats blind incrementing:
	// it stays correct when other sessions recorded shakes meanwhile.
	if remote, err := r.client.ShakesForDate(ctx, today); err == nil {
		r.correctDailyCount(ctx, len(remote))
	} else if _, err := r.quota.Increment(ctx, 1); err != nil {
		r.log.Warn(ctx, "failed to increment quota window", "error", err)
	}

	if shake.ID == "" {
		shake.ID = uuid.NewString()
	}
	if shake.Timestamp.IsZero() {
		shake.Timestamp = r.now()
	}
	if err := r.history.Insert(ctx, shake); err != nil {
		// history is display-only; losing a row is recoverable
		r.log.Warn(ctx, "failed to store shake history", "error", err)
	}

	// feed entry is optional on some deployments
	if err := r.client.LogActivity(ctx, "shake", "Shake completed"); err != nil {
		r.log.Warn(ctx, "failed to log shake activity", "error", err)
	}
	return shake, nil
}

func (r *ShakeRecorder) finishOffline(ctx context.Context) (*models.Shake, error) {
	now := r.now()
	today := timex.DateKey(now)

	f, err := r.counters.Fallback(ctx)
	if err != nil {
		return nil, err
	}
	if f.DateKey != today {
		f.Daily = 0
		f.DateKey = today
	}
	f.Daily++
	f.Total++
	if err := r.counters.SetFallback(ctx, f); err != nil {
		return nil, err
	}

	if _, err := r.quota.Increment(ctx, 1); err != nil {
		return nil, err
	}

	local := &models.Shake{ID: uuid.NewString(), Timestamp: now, Synced: false}
	if err := r.history.Insert(ctx, local); err != nil {
		r.log.Warn(ctx, "failed to store offline shake history", "error", err)
	}

	r.log.Info(ctx, "backend unreachable, shake recorded locally", "daily", f.Daily, "total", f.Total)
	return local, nil
}

func (r *ShakeRecorder) correctDailyCount(ctx context.Context, count int) {
	if err := r.quota.SetCount(ctx, count); err != nil {
		r.log.Warn(ctx, "failed to correct quota window", "error", err)
	}
}
