package models

import "time"

// Shake is one recorded qualifying event. Immutable once created.
type Shake struct {
	// ID is a globally unique identifier. Backend-assigned for submitted
	// shakes, generated locally for offline-simulated ones.
	ID string

	// Timestamp is the normalized instant the shake was performed.
	Timestamp time.Time

	// Reward names the reward attached by the backend, if any.
	Reward string

	// Synced is false for shakes recorded while the backend was
	// unreachable. Such records exist for history display only; their
	// counts are replaced wholesale during reconciliation.
	Synced bool
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID        string
	Type      string
	Title     string
	Timestamp time.Time
}

// QuotaWindow is the current day's count of qualifying shakes plus the
// local calendar-date key it is attributed to.
type QuotaWindow struct {
	DateKey string
	Count   int
}

// Feedback is a user-submitted report forwarded to the backend.
type Feedback struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
	Rating   int    `json:"rating,omitempty"`
}

// FallbackCounters are locally persisted shake counts used only while the
// backend is unreachable. They are overwritten, never summed, when a real
// backend count is obtained.
type FallbackCounters struct {
	Daily   int
	DateKey string
	Total   int
}
