package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      State
		event     EventKind
		want      State
		remaining uint32 // after the event, starting from 100
	}{
		{"running pause", StateRunning, EventPause, StatePaused, 100},
		{"running stop", StateRunning, EventStop, StateStopped, 0},
		{"paused resume", StatePaused, EventResume, StateRunning, 100},
		{"paused stop", StatePaused, EventStop, StateStopped, 0},
		{"running resume ignored", StateRunning, EventResume, StateRunning, 100},
		{"paused pause ignored", StatePaused, EventPause, StatePaused, 100},
		{"running notify noop", StateRunning, EventNotifyAck, StateRunning, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 100, time.Unix(0, 0))
			h.state = tt.from
			h.apply(Event{Kind: tt.event})
			require.Equal(t, tt.want, h.state)
			require.Equal(t, tt.remaining, h.remaining)
		})
	}
}

func TestTerminalStatesIgnoreEverything(t *testing.T) {
	for _, terminal := range []State{StateStopped, StateFinished} {
		h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 100, time.Unix(0, 0))
		h.state = terminal
		h.remaining = 0
		for _, k := range []EventKind{EventPause, EventResume, EventStop, EventExtend} {
			h.apply(Event{Kind: k, Extend: 60})
			require.Equal(t, terminal, h.state)
			require.Equal(t, uint32(0), h.remaining)
		}
	}
}

func TestTickDown(t *testing.T) {
	h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 2, time.Unix(0, 0))
	h.tickDown()
	require.Equal(t, uint32(1), h.remaining)
	require.Equal(t, StateRunning, h.state)

	h.tickDown()
	require.Equal(t, uint32(0), h.remaining)
	require.Equal(t, StateFinished, h.state)

	// finished: further ticks are no-ops
	h.tickDown()
	require.Equal(t, uint32(0), h.remaining)
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 50, time.Unix(0, 0))
	h.apply(Event{Kind: EventPause})
	for i := 0; i < 10; i++ {
		h.tickDown()
	}
	require.Equal(t, uint32(50), h.remaining)
}

func TestExtendClampsAtHardCap(t *testing.T) {
	// 90s initial rounds up to a 3600s ceiling
	h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 90, time.Unix(0, 0))
	require.Equal(t, uint32(3600), h.hardCap)

	h.apply(Event{Kind: EventExtend, Extend: 60})
	require.Equal(t, uint32(150), h.remaining)

	// overflow past the ceiling is silently clamped
	h.apply(Event{Kind: EventExtend, Extend: 100000})
	require.Equal(t, uint32(3600), h.remaining)

	// extend while paused behaves the same
	h.apply(Event{Kind: EventPause})
	h.remaining = 100
	h.apply(Event{Kind: EventExtend, Extend: 50})
	require.Equal(t, uint32(150), h.remaining)
	require.Equal(t, StatePaused, h.state)
}

func TestHardCapCeiling(t *testing.T) {
	tests := []struct {
		total uint32
		cap   uint32
	}{
		{30, 3600},
		{3600, 3600},
		{3601, 7200},
		{7000, 7200},
		{7200, 7200},
	}
	for _, tt := range tests {
		h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, tt.total, time.Unix(0, 0))
		require.Equal(t, tt.cap, h.hardCap, "total=%d", tt.total)
	}
}

func TestDrainAppliesFIFO(t *testing.T) {
	h := newHandle(Key{UserID: 1, ChannelID: 2}, 3, 100, time.Unix(0, 0))
	h.events <- Event{Kind: EventPause}
	h.events <- Event{Kind: EventResume}
	h.events <- Event{Kind: EventExtend, Extend: 10}
	h.drain()
	require.Equal(t, StateRunning, h.state)
	require.Equal(t, uint32(110), h.remaining)
}
