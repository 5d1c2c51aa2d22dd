package timex

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Backends report shake timestamps in several shapes: RFC3339 text, epoch
// seconds, epoch milliseconds, numeric text, or a wrapped-seconds object.
// Normalize is the single parsing boundary that converts any of them into a
// time.Time; everything downstream consumes only the result.
//
// Numbers at or above epochMillisCutoff are interpreted as milliseconds,
// anything below as seconds. The reported ok is false for unrecognized
// shapes or invalid instants; callers must exclude such values from
// ordering and display rather than substituting the current time.
const epochMillisCutoff = 1e12

// Normalize converts a raw timestamp value into a time.Time.
func Normalize(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case int:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case float64:
		return fromEpoch(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f)
	case string:
		return fromString(v)
	case map[string]any:
		sec, ok := v["seconds"]
		if !ok {
			return time.Time{}, false
		}
		switch s := sec.(type) {
		case float64:
			// a wrapped seconds field is always seconds, never millis
			return time.Unix(int64(s), 0), true
		case int:
			return time.Unix(int64(s), 0), true
		case int64:
			return time.Unix(s, 0), true
		case json.Number:
			n, err := s.Int64()
			if err != nil {
				return time.Time{}, false
			}
			return time.Unix(n, 0), true
		case string:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return time.Time{}, false
			}
			return time.Unix(n, 0), true
		default:
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}
}

func fromEpoch(v float64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}
	ms := v
	if v < epochMillisCutoff {
		ms = v * 1000
	}
	return time.UnixMilli(int64(ms)), true
}

func fromString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if isDigits(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(n)
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
