package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestOffer_FirstSampleNeverFires(t *testing.T) {
	d := NewDetector(DefaultThreshold, DefaultDebounce, nil)
	require.False(t, d.Offer(Sample{X: 5, At: at(0)}))
}

func TestOffer_FiresOnMagnitudeJump(t *testing.T) {
	d := NewDetector(1.2, DefaultDebounce, nil)

	require.False(t, d.Offer(Sample{Z: 1, At: at(0)}))       // resting, ~1g
	require.False(t, d.Offer(Sample{Z: 1.5, At: at(100)}))   // small wobble
	require.True(t, d.Offer(Sample{X: 3, Z: 1, At: at(200)})) // sharp jerk
}

func TestOffer_DebounceSuppressesBurst(t *testing.T) {
	d := NewDetector(1.2, 800*time.Millisecond, nil)

	d.Offer(Sample{Z: 1, At: at(0)})
	require.True(t, d.Offer(Sample{X: 3, Z: 1, At: at(100)}))

	// the shake continues; every delta is above threshold but the
	// debounce holds
	require.False(t, d.Offer(Sample{Z: 1, At: at(200)}))
	require.False(t, d.Offer(Sample{X: 3, Z: 1, At: at(400)}))

	// past the debounce a fresh jerk fires again
	require.False(t, d.Offer(Sample{X: 3, Z: 1, At: at(1000)}))
	require.True(t, d.Offer(Sample{Z: 1, At: at(1100)}))
}

func TestOffer_BusyGateSuppresses(t *testing.T) {
	busy := true
	d := NewDetector(1.2, 0, func() bool { return busy })

	d.Offer(Sample{Z: 1, At: at(0)})
	require.False(t, d.Offer(Sample{X: 3, Z: 1, At: at(100)}))

	busy = false
	require.True(t, d.Offer(Sample{Z: 1, At: at(200)}))
}

func TestOffer_PrevAdvancesWhileSuppressed(t *testing.T) {
	d := NewDetector(1.2, 10*time.Second, nil)

	d.Offer(Sample{Z: 1, At: at(0)})
	require.True(t, d.Offer(Sample{X: 5, Z: 1, At: at(100)}))

	// a sustained hold at the new magnitude produces no delta
	require.False(t, d.Offer(Sample{X: 5, Z: 1, At: at(200)}))
	// long after the debounce, a sample near the advanced baseline still
	// does not fire even though it is far from the resting magnitude
	require.False(t, d.Offer(Sample{X: 5.2, Z: 1, At: at(20_000)}))
}

func TestMagnitude(t *testing.T) {
	require.InDelta(t, 1.0, Sample{Z: 1}.Magnitude(), 1e-9)
	require.InDelta(t, 5.0, Sample{X: 3, Y: 4}.Magnitude(), 1e-9)
}
