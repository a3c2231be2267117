// Package testutil provides deterministic fakes for the timer engine: a
// manually advanced clock and a recording messenger with scriptable failures.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// FakeClock is a timer.Clock whose time only moves when a test calls Advance.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFakeClock starts at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *FakeClock) NewTimer(d time.Duration) timer.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{clock: c, at: c.now.Add(d), ch: make(chan time.Time, 1)}
	if d <= 0 {
		ft.ch <- c.now
	} else {
		c.timers = append(c.timers, ft)
	}
	return ft
}

// Advance moves the clock forward and fires every timer that came due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var pending []*fakeTimer
	var due []*fakeTimer
	for _, ft := range c.timers {
		if !ft.at.After(c.now) {
			due = append(due, ft)
		} else {
			pending = append(pending, ft)
		}
	}
	c.timers = pending
	now := c.now
	c.mu.Unlock()
	for _, ft := range due {
		ft.ch <- now
	}
}

// Pending returns the number of armed timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// WaitPending blocks until at least n timers are armed, failing the test
// after a real-time deadline. It synchronizes a test with a driver goroutine
// that is about to sleep.
func (c *FakeClock) WaitPending(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d armed timers (have %d)", n, c.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeTimer struct {
	clock *FakeClock
	at    time.Time
	ch    chan time.Time
}

func (ft *fakeTimer) C() <-chan time.Time { return ft.ch }

func (ft *fakeTimer) Stop() bool {
	ft.clock.mu.Lock()
	defer ft.clock.mu.Unlock()
	for i, other := range ft.clock.timers {
		if other == ft {
			ft.clock.timers = append(ft.clock.timers[:i], ft.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}

// FakeMessenger records every port call and can be scripted to fail edits.
type FakeMessenger struct {
	mu sync.Mutex

	posts    []timer.View
	edits    []timer.View
	texts    []string
	privates []string
	deletes  []timer.MessageRef

	postErr  error
	editErrs []error
}

// NewFakeMessenger returns an empty recorder.
func NewFakeMessenger() *FakeMessenger { return &FakeMessenger{} }

var _ timer.Messenger = (*FakeMessenger)(nil)

func (f *FakeMessenger) PostTimer(_ context.Context, channelID uint64, v timer.View) (timer.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return timer.MessageRef{}, f.postErr
	}
	f.posts = append(f.posts, v)
	return timer.MessageRef{ChannelID: channelID, MessageID: "msg-1"}, nil
}

func (f *FakeMessenger) EditTimer(_ context.Context, _ timer.MessageRef, v timer.View) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.editErrs) > 0 {
		err := f.editErrs[0]
		f.editErrs = f.editErrs[1:]
		if err != nil {
			return err
		}
	}
	f.edits = append(f.edits, v)
	return nil
}

func (f *FakeMessenger) SendText(_ context.Context, _ uint64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, content)
	return nil
}

func (f *FakeMessenger) ReplyPrivate(_ context.Context, _ string, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.privates = append(f.privates, content)
	return nil
}

func (f *FakeMessenger) DeleteTimer(_ context.Context, ref timer.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, ref)
	return nil
}

// FailPost makes the next PostTimer return err.
func (f *FakeMessenger) FailPost(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postErr = err
}

// FailNextEdits scripts the outcome of the next len(errs) edit calls; nil
// entries succeed.
func (f *FakeMessenger) FailNextEdits(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editErrs = append(f.editErrs, errs...)
}

// Posts returns a copy of the recorded initial posts.
func (f *FakeMessenger) Posts() []timer.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]timer.View(nil), f.posts...)
}

// Edits returns a copy of the recorded embed edits.
func (f *FakeMessenger) Edits() []timer.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]timer.View(nil), f.edits...)
}

// Texts returns a copy of the recorded side-channel messages.
func (f *FakeMessenger) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

// LastEdit returns the most recent edit view; ok=false when none happened.
func (f *FakeMessenger) LastEdit() (timer.View, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return timer.View{}, false
	}
	return f.edits[len(f.edits)-1], true
}
