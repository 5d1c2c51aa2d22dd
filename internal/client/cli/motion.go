package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/motion"
)

// Motion feeds accelerometer samples into the shake detector. Each input
// line is an "x y z" triple in g; an empty line ends the session. Samples
// that register as a shake go through the regular recording pipeline, so
// quota, debounce and the in-flight guard all apply.
func (a *App) Motion(ctx context.Context) error {
	fmt.Println("Enter accelerometer samples as 'x y z' (empty line to finish)")

	// a trigger is suppressed while a submission is in flight or when the
	// last known window is already exhausted; both checks are in-memory
	busy := func() bool {
		return a.recorder.InFlight() || a.quota.Exhausted()
	}
	detector := motion.NewDetector(motion.DefaultThreshold, motion.DefaultDebounce, busy)

	for {
		line, err := a.reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		sample, ok := parseSample(line, time.Now())
		if !ok {
			fmt.Println("Expected three numbers, e.g.: 0.1 0.2 9.8")
			continue
		}

		if detector.Offer(sample) {
			fmt.Println("Shake detected!")
			_ = a.Shake(ctx)
		}

		if err != nil {
			return nil
		}
	}
}

func parseSample(line string, at time.Time) (motion.Sample, bool) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return motion.Sample{}, false
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return motion.Sample{}, false
		}
		vals[i] = v
	}

	return motion.Sample{X: vals[0], Y: vals[1], Z: vals[2], At: at}, true
}
