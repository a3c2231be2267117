package timer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Taraldinn/hear-hear-bot-sub000/testutil"
	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		seconds int
		wantErr error
	}{
		{"zero duration", 0, 0, timer.ErrDurationOutOfRange},
		{"negative minutes", -1, 30, timer.ErrDurationOutOfRange},
		{"seconds overflow", 5, 60, timer.ErrDurationOutOfRange},
		{"minutes overflow", 121, 0, timer.ErrDurationOutOfRange},
		{"over the ceiling", 120, 59, timer.ErrDurationOutOfRange},
		{"one second", 0, 1, nil},
		{"exactly two hours", 120, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			err := e.surface.Start(context.Background(), timer.StartRequest{
				GuildID:   1,
				ChannelID: 42,
				UserID:    7,
				Minutes:   tt.minutes,
				Seconds:   tt.seconds,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, 0, e.reg.Count())
				require.Empty(t, e.msgr.Posts())
				return
			}
			require.NoError(t, err)
			require.Equal(t, 1, e.reg.Count())
		})
	}
}

func TestDoubleStartConflict(t *testing.T) {
	e := newEngine(t)
	key := e.start(t, 7, 42, 5, 0)

	err := e.surface.Start(context.Background(), timer.StartRequest{
		GuildID: 1, ChannelID: 42, UserID: 7, Minutes: 1, Seconds: 0,
	})
	require.ErrorIs(t, err, timer.ErrAlreadyRunning)

	// the first timer is untouched and still the only one
	require.Equal(t, 1, e.reg.Count())
	require.Len(t, e.msgr.Posts(), 1)
	require.True(t, e.surface.Lookup(key))

	// same user in another channel is fine
	e.start(t, 7, 43, 5, 0)
	require.Equal(t, 2, e.reg.Count())
}

func TestStartPostFailureLeavesNoTimer(t *testing.T) {
	e := newEngine(t)
	e.msgr.FailPost(errors.New("channel gone"))

	err := e.surface.Start(context.Background(), timer.StartRequest{
		GuildID: 1, ChannelID: 42, UserID: 7, Minutes: 1, Seconds: 0,
	})
	require.Error(t, err)
	require.Equal(t, 0, e.reg.Count())

	// the slot is free again once the adapter recovers
	e.msgr.FailPost(nil)
	e.start(t, 7, 42, 1, 0)
}

func TestControlIsOwnerOnly(t *testing.T) {
	e := newEngine(t)
	key := e.start(t, 7, 42, 1, 0)

	const stranger = 99
	require.ErrorIs(t, e.surface.Pause(key, stranger), timer.ErrNotOwner)
	require.ErrorIs(t, e.surface.Stop(key, stranger), timer.ErrNotOwner)
	require.ErrorIs(t, e.surface.Extend(key, stranger, 60), timer.ErrNotOwner)
	require.ErrorIs(t, e.surface.Notify(key, stranger), timer.ErrNotOwner)

	// the timer keeps running unaffected
	require.Equal(t, 1, e.reg.Count())
	e.tick(t)
	waitFor(t, "countdown unaffected", func() bool {
		v, ok := e.msgr.LastEdit()
		return ok && v.Countdown == "00:59" && v.Status == "RUNNING"
	})
}

func TestControlWithoutTimer(t *testing.T) {
	e := newEngine(t)
	key := timer.Key{UserID: 7, ChannelID: 42}
	require.ErrorIs(t, e.surface.Pause(key, 7), timer.ErrNoTimer)
	require.ErrorIs(t, e.surface.Resume(key, 7), timer.ErrNoTimer)
	require.ErrorIs(t, e.surface.Stop(key, 7), timer.ErrNoTimer)
	require.False(t, e.surface.Lookup(key))
}

func TestResetAllRequiresAdmin(t *testing.T) {
	e := newEngine(t)
	e.start(t, 7, 42, 1, 0)

	_, err := e.surface.ResetAll(false)
	require.ErrorIs(t, err, timer.ErrAdminRequired)
	require.Equal(t, 1, e.reg.Count())
}

func TestResetAllStopsEveryTimer(t *testing.T) {
	e := newEngine(t)
	e.start(t, 7, 42, 1, 0)
	e.start(t, 8, 42, 2, 0)
	e.start(t, 7, 43, 3, 0)

	n, err := e.surface.ResetAll(true)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	waitFor(t, "all drivers exited", func() bool { return e.reg.Count() == 0 })
	require.Equal(t, 3, countContaining(e.msgr.Texts(), "Timer stopped"))
}

func TestShutdownRendersFinalFrames(t *testing.T) {
	e := newEngine(t)
	e.start(t, 7, 42, 1, 0)
	e.start(t, 8, 42, 1, 0)

	e.surface.Shutdown()
	require.Equal(t, 0, e.reg.Count())

	stopped := 0
	for _, v := range e.msgr.Edits() {
		if v.Status == "STOPPED" {
			stopped++
		}
	}
	require.Equal(t, 2, stopped)
}

func TestStartRefusedDuringShutdown(t *testing.T) {
	e := newEngine(t)
	e.cancel()

	err := e.surface.Start(context.Background(), timer.StartRequest{
		GuildID: 1, ChannelID: 42, UserID: 7, Minutes: 1, Seconds: 0,
	})
	require.Error(t, err)
	require.Equal(t, 0, e.reg.Count())
}

func TestNotifyAcknowledgedWithoutStateChange(t *testing.T) {
	e := newEngine(t)
	key := e.start(t, 7, 42, 1, 0)

	require.NoError(t, e.surface.Notify(key, 7))
	e.tick(t)
	waitFor(t, "countdown keeps running", func() bool {
		v, ok := e.msgr.LastEdit()
		return ok && v.Countdown == "00:59" && v.Status == "RUNNING"
	})
}

func TestSurfaceDefaults(t *testing.T) {
	reg := timer.NewRegistry()
	s := timer.NewSurface(reg, timer.Options{Messenger: testutil.NewFakeMessenger()})
	require.NotNil(t, s)
	// the default language resolver is English
	require.Equal(t, "english", string(s.Language(context.Background(), 1)))
}
