package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/counters"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/shakes"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// SyncState describes where the currently displayed counts come from.
type SyncState int32

const (
	// SyncUnknown means no count source has been established yet.
	SyncUnknown SyncState = iota
	// SyncLocalOnly means the backend could not be reached and the
	// displayed counts come from the local fallback counters.
	SyncLocalOnly
	// SyncSynced means the displayed counts are the backend's.
	SyncSynced
)

func (s SyncState) String() string {
	switch s {
	case SyncLocalOnly:
		return "local-only"
	case SyncSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// Reconciler resolves the displayed shake counts between the backend and the
// locally accumulated fallback counters. The backend's counts always win
// outright: local fallback values are overwritten, never summed, so a count
// recorded both locally and remotely is not double-counted.
type Reconciler struct {
	client   api.Client
	counters counters.Repository
	history  shakes.Repository
	quota    *QuotaTracker
	log      logging.Logger
	state    atomic.Int32
	now      func() time.Time
}

func NewReconciler(client api.Client, counterRepo counters.Repository, history shakes.Repository, quota *QuotaTracker, log logging.Logger) *Reconciler {
	return &Reconciler{
		client:   client,
		counters: counterRepo,
		history:  history,
		quota:    quota,
		log:      log,
		now:      time.Now,
	}
}

// State returns the source of the most recently resolved counts.
func (r *Reconciler) State() SyncState {
	return SyncState(r.state.Load())
}

// RefreshCounts returns today's shake count and the all-time total.
//
// When the backend responds, its counts replace any local fallback state
// and the state becomes SyncSynced. When it does not, the counts come from
// the persisted local window and fallback counters and the state becomes
// SyncLocalOnly; a local storage failure further degrades to zeros rather
// than failing the caller, since counts are display data.
func (r *Reconciler) RefreshCounts(ctx context.Context) (daily int, total int, state SyncState) {
	today := timex.DateKey(r.now())

	remoteToday, err := r.client.ShakesForDate(ctx, today)
	var remoteAll []models.Shake
	if err == nil {
		remoteAll, err = r.client.Shakes(ctx)
	}

	if err != nil {
		r.log.Debug(ctx, "count refresh falling back to local counters", "error", err)
		r.state.Store(int32(SyncLocalOnly))
		return r.localCounts(ctx, today)
	}

	daily = len(remoteToday)
	total = len(remoteAll)

	// Backend wins. Discard whatever accumulated locally while offline.
	if err := r.quota.SetCount(ctx, daily); err != nil {
		r.log.Warn(ctx, "failed to persist reconciled window", "error", err)
	}
	fb := models.FallbackCounters{Daily: daily, DateKey: today, Total: total}
	if err := r.counters.SetFallback(ctx, fb); err != nil {
		r.log.Warn(ctx, "failed to persist reconciled fallback counters", "error", err)
	}

	r.state.Store(int32(SyncSynced))
	return daily, total, SyncSynced
}

func (r *Reconciler) localCounts(ctx context.Context, today string) (int, int, SyncState) {
	daily := 0
	if w, err := r.quota.Window(ctx); err == nil {
		daily = w.Count
	} else {
		r.log.Warn(ctx, "failed to read quota window", "error", err)
		// estimate today's count from the local shake history instead
		if n, herr := r.history.CountByDate(ctx, today); herr == nil {
			daily = n
		}
	}

	total := 0
	if f, err := r.counters.Fallback(ctx); err == nil {
		total = f.Total
	} else {
		r.log.Warn(ctx, "failed to read fallback counters", "error", err)
	}

	return daily, total, SyncLocalOnly
}
