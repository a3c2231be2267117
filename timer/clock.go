package timer

import "time"

// Clock abstracts time so the driver loop can be tested deterministically.
// Production code uses RealClock; tests substitute a fake that advances
// manually.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Since returns the duration elapsed since t.
	Since(t time.Time) time.Duration
	// NewTimer creates a Timer that fires after d.
	NewTimer(d time.Duration) Timer
}

// Timer abstracts time.Timer so fake clocks can provide controllable timers.
type Timer interface {
	// C returns the channel the firing time is delivered on.
	C() <-chan time.Time
	// Stop prevents the timer from firing and reports whether it was stopped
	// before it fired.
	Stop() bool
}

// RealClock is a zero-value Clock backed by the time package. It is safe for
// concurrent use because it holds no mutable state.
type RealClock struct{}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }
func (RealClock) NewTimer(d time.Duration) Timer  { return &realTimer{inner: time.NewTimer(d)} }

type realTimer struct {
	inner *time.Timer
}

func (t *realTimer) C() <-chan time.Time { return t.inner.C }
func (t *realTimer) Stop() bool          { return t.inner.Stop() }
