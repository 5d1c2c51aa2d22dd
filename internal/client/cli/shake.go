package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

const historyPageSize = 20

// Shake records one shake and prints the outcome.
func (a *App) Shake(ctx context.Context) error {
	shake, err := a.recorder.Record(ctx)
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			h, m := a.quota.TimeUntilReset(time.Now())
			fmt.Printf("Daily limit reached. Resets in %dh %dm.\n", h, m)
			return nil
		}
		fmt.Printf("Shake failed: %s\n", err.Error())
		return err
	}
	if shake == nil {
		// another submission is still in flight
		return nil
	}

	if shake.Synced {
		fmt.Println("Shake recorded!")
	} else {
		fmt.Println("Shake recorded locally (backend unreachable, will reconcile).")
	}
	if shake.Reward != "" {
		fmt.Printf("Reward: %s\n", shake.Reward)
	}

	remaining, err := a.quota.Remaining(ctx)
	if err == nil {
		fmt.Printf("%d of %d shakes left today.\n", remaining, a.quota.Limit())
	}
	return nil
}

// Status prints today's count, the all-time total, the remaining quota and
// the time until the daily reset.
func (a *App) Status(ctx context.Context) error {
	daily, total, state := a.reconciler.RefreshCounts(ctx)

	remaining := a.quota.Limit() - daily
	if remaining < 0 {
		remaining = 0
	}

	fmt.Printf("Today: %d / %d shakes (%s)\n", daily, a.quota.Limit(), state)
	fmt.Printf("Total: %d shakes\n", total)
	if remaining == 0 {
		h, m := a.quota.TimeUntilReset(time.Now())
		fmt.Printf("Limit reached. Resets in %dh %dm.\n", h, m)
	} else {
		fmt.Printf("Remaining today: %d\n", remaining)
	}
	return nil
}

// History lists recent shakes from the local store, newest first.
func (a *App) History(ctx context.Context) error {
	items, err := a.repos.Shakes.Recent(ctx, historyPageSize)
	if err != nil {
		fmt.Printf("Failed to load history: %s\n", err.Error())
		return err
	}
	if len(items) == 0 {
		fmt.Println("No shakes recorded yet.")
		return nil
	}

	now := time.Now()
	for _, s := range items {
		marker := ""
		if !s.Synced {
			marker = " (local)"
		}
		reward := s.Reward
		if reward == "" {
			reward = "-"
		}
		fmt.Printf("%-22s %s%s\n", timex.FormatRelative(s.Timestamp, now), reward, marker)
	}
	return nil
}

// Activity lists recent shake activity feed entries from the backend.
func (a *App) Activity(ctx context.Context) error {
	items, err := a.apiClient.RecentActivities(ctx, "shake", historyPageSize)
	if err != nil {
		fmt.Printf("Failed to load activities: %s\n", err.Error())
		return err
	}
	if len(items) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}

	now := time.Now()
	for _, it := range items {
		fmt.Printf("%-22s %s\n", timex.FormatRelative(it.Timestamp, now), it.Title)
	}
	return nil
}
