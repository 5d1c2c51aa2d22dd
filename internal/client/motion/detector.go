// Package motion turns a stream of accelerometer samples into discrete
// shake triggers. Detection is by magnitude delta: a sample whose total
// acceleration differs from the previous sample's by more than the
// threshold fires, subject to a debounce interval and a busy gate.
package motion

import (
	"math"
	"time"
)

const (
	// DefaultThreshold is the magnitude delta, in g, above which a sample
	// counts as a shake.
	DefaultThreshold = 1.2

	// DefaultDebounce is the minimum interval between two triggers.
	DefaultDebounce = 800 * time.Millisecond
)

// Sample is one accelerometer reading with per-axis acceleration in g.
type Sample struct {
	X, Y, Z float64
	At      time.Time
}

// Magnitude returns the total acceleration of the sample.
func (s Sample) Magnitude() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Detector holds the rolling detection state. Not safe for concurrent
// use; feed it from a single goroutine.
type Detector struct {
	threshold float64
	debounce  time.Duration
	busy      func() bool

	prev     float64
	hasPrev  bool
	lastFire time.Time
}

// NewDetector creates a detector. busy is consulted synchronously before
// firing; while it reports true (a submission in flight, quota spent)
// triggers are suppressed. A nil busy never suppresses.
func NewDetector(threshold float64, debounce time.Duration, busy func() bool) *Detector {
	return &Detector{threshold: threshold, debounce: debounce, busy: busy}
}

// Offer feeds one sample and reports whether it fires a trigger.
//
// The previous-magnitude state advances on every sample, including ones
// suppressed by the debounce or the busy gate, so a sustained shake does
// not fire again the instant the debounce expires.
func (d *Detector) Offer(s Sample) bool {
	m := s.Magnitude()
	defer func() {
		d.prev = m
		d.hasPrev = true
	}()

	if !d.hasPrev {
		return false
	}
	if math.Abs(m-d.prev) <= d.threshold {
		return false
	}
	if !d.lastFire.IsZero() && s.At.Sub(d.lastFire) < d.debounce {
		return false
	}
	if d.busy != nil && d.busy() {
		return false
	}

	d.lastFire = s.At
	return true
}
