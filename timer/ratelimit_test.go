package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func gateHandle(remaining uint32) *Handle {
	h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 600, time.Unix(0, 0))
	h.remaining = remaining
	return h
}

func TestGateFirstFrameAlwaysPushes(t *testing.T) {
	g := pushGate{minInterval: time.Second}
	h := gateHandle(599)
	require.True(t, g.shouldPush(h, time.Unix(100, 0)))
}

func TestGateDebouncesWithinInterval(t *testing.T) {
	g := pushGate{minInterval: time.Second}
	now := time.Unix(100, 0)

	h := gateHandle(599) // not a boundary, not a milestone, not the tail
	recordPush(h, now)
	require.False(t, g.shouldPush(h, now.Add(500*time.Millisecond)))
	require.True(t, g.shouldPush(h, now.Add(time.Second)))
}

func TestGateTailRegionAlwaysPushes(t *testing.T) {
	g := pushGate{minInterval: time.Hour} // interval can never admit
	now := time.Unix(100, 0)
	for r := uint32(1); r <= 10; r++ {
		h := gateHandle(r)
		recordPush(h, now)
		require.True(t, g.shouldPush(h, now.Add(time.Millisecond)), "remaining=%d", r)
	}
	h := gateHandle(11)
	recordPush(h, now)
	require.False(t, g.shouldPush(h, now.Add(time.Millisecond)))
}

func TestGateMinuteBoundariesAndMilestones(t *testing.T) {
	g := pushGate{minInterval: time.Hour}
	now := time.Unix(100, 0)
	for _, r := range []uint32{540, 300, 180, 120, 60, 30} {
		h := gateHandle(r)
		recordPush(h, now)
		require.True(t, g.shouldPush(h, now.Add(time.Millisecond)), "remaining=%d", r)
	}
}

func TestGateStateChangeAdmits(t *testing.T) {
	g := pushGate{minInterval: time.Hour}
	now := time.Unix(100, 0)
	h := gateHandle(599)
	recordPush(h, now)
	h.apply(Event{Kind: EventPause})
	require.True(t, g.shouldPush(h, now.Add(time.Millisecond)))

	// once the paused frame is out, the gate debounces again
	recordPush(h, now.Add(time.Millisecond))
	require.False(t, g.shouldPush(h, now.Add(2*time.Millisecond)))
}

// TestGateRateCap simulates a full minute of one-second ticks and verifies
// the per-second edit budget holds.
func TestGateRateCap(t *testing.T) {
	g := pushGate{minInterval: time.Second}
	h := gateHandle(600)
	now := time.Unix(100, 0)
	recordPush(h, now)

	for i := 0; i < 60; i++ {
		now = now.Add(time.Second)
		h.tickDown()
		pushes := 0
		if g.shouldPush(h, now) {
			pushes++
			recordPush(h, now)
		}
		require.LessOrEqual(t, pushes, 1, "tick %d", i)
	}
}
