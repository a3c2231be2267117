package timer

import "time"

// pushGate decides whether a tick's view is worth an embed edit. It protects
// the external edit channel: at most one regular edit per minInterval, with
// mandatory admission for the tail region, minute boundaries, milestone
// frames, state changes, and the terminal frame.
type pushGate struct {
	minInterval time.Duration
}

// shouldPush reports whether the current frame must be sent. On a successful
// edit the driver records the push via recordPush.
func (g pushGate) shouldPush(h *Handle, now time.Time) bool {
	if !h.pushedOnce {
		return true
	}
	if h.state != h.lastPushState {
		return true
	}
	r := h.remaining
	if r <= 10 {
		return true
	}
	if r%60 == 0 {
		return true
	}
	switch r {
	case 300, 180, 60, 30:
		return true
	}
	return now.Sub(h.lastPushAt) >= g.minInterval
}

// recordPush notes a successful edit so the gate can debounce the next one.
func recordPush(h *Handle, now time.Time) {
	h.lastPushAt = now
	h.lastPushState = h.state
	h.pushedOnce = true
}
