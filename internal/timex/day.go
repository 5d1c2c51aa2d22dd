package timex

import (
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-date key attached to daily counters.
// Keys are derived from the device-local calendar day.
const DateKeyLayout = "2006-01-02"

// DateKey returns the local calendar-date key for t.
func DateKey(t time.Time) string {
	return t.Local().Format(DateKeyLayout)
}

// SameLocalDay reports whether a and b fall on the same local calendar day.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// UntilMidnight returns whole hours and minutes remaining between now and
// the next local midnight. Pure, no side effects.
func UntilMidnight(now time.Time) (hours, minutes int) {
	local := now.Local()
	tomorrow := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location()).AddDate(0, 0, 1)
	diff := tomorrow.Sub(local)
	hours = int(diff / time.Hour)
	minutes = int((diff % time.Hour) / time.Minute)
	return hours, minutes
}

// FormatRelative renders a timestamp for activity feeds: same local day as
// now is "Today, <time>", the previous day "Yesterday, <time>", anything
// older "<month> <day>, <time>".
func FormatRelative(t, now time.Time) string {
	local := t.Local()
	clock := local.Format("3:04 PM")
	switch {
	case SameLocalDay(t, now):
		return fmt.Sprintf("Today, %s", clock)
	case SameLocalDay(t, now.AddDate(0, 0, -1)):
		return fmt.Sprintf("Yesterday, %s", clock)
	default:
		return fmt.Sprintf("%s, %s", local.Format("Jan 2"), clock)
	}
}
