package timer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func snap(total, remaining uint32, state State) Snapshot {
	return Snapshot{
		Key:          Key{UserID: 7, ChannelID: 8},
		OwnerID:      7,
		InitialTotal: total,
		Remaining:    remaining,
		State:        state,
	}
}

func TestRenderColorTiers(t *testing.T) {
	tests := []struct {
		name      string
		remaining uint32
		state     State
		color     int
		status    string
	}{
		{"green above 5min", 301, StateRunning, colorGreen, "RUNNING"},
		{"yellow at 5min", 300, StateRunning, colorYellow, "RUNNING"},
		{"yellow above 1min", 61, StateRunning, colorYellow, "RUNNING"},
		{"orange at 1min", 60, StateRunning, colorOrange, "HURRY UP!"},
		{"orange above 30s", 31, StateRunning, colorOrange, "HURRY UP!"},
		{"red at 30s", 30, StateRunning, colorRed, "FINAL COUNTDOWN!"},
		{"red at 1s", 1, StateRunning, colorRed, "FINAL COUNTDOWN!"},
		{"paused overrides tiers", 400, StatePaused, colorGrey, "PAUSED"},
		{"finished", 0, StateFinished, colorRed, "FINISHED!"},
		{"stopped", 0, StateStopped, colorRed, "STOPPED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Render(snap(600, tt.remaining, tt.state))
			require.Equal(t, tt.color, v.Color)
			require.Equal(t, tt.status, v.Status)
		})
	}
}

func TestRenderCountdownFormat(t *testing.T) {
	tests := []struct {
		remaining uint32
		want      string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{61, "01:01"},
		{600, "10:00"},
		{7199, "119:59"},
	}
	for _, tt := range tests {
		v := Render(snap(7200, tt.remaining, StateRunning))
		require.Equal(t, tt.want, v.Countdown)
	}
}

func TestRenderFooterAndMedia(t *testing.T) {
	require.Empty(t, Render(snap(60, 31, StateRunning)).Footer)
	require.NotEmpty(t, Render(snap(60, 30, StateRunning)).Footer)
	// paused and terminal frames carry no running-out hint
	require.Empty(t, Render(snap(60, 10, StatePaused)).Footer)
	require.Empty(t, Render(snap(60, 0, StateFinished)).Footer)

	require.True(t, Render(snap(60, 0, StateFinished)).ShowFinishedMedia)
	require.False(t, Render(snap(60, 0, StateStopped)).ShowFinishedMedia)
}

// TestProgressBarLaw checks filled = floor(20 * elapsed / total) on every
// generated frame and a constant overall width.
func TestProgressBarLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Uint32Range(1, 7200).Draw(t, "total")
		remaining := rapid.Uint32Range(0, total).Draw(t, "remaining")
		bar := progressBar(total, remaining)

		filled := strings.Count(bar, "▰")
		empty := strings.Count(bar, "▱")
		if filled+empty != progressCells {
			t.Fatalf("bar width %d, want %d", filled+empty, progressCells)
		}
		want := int(uint64(progressCells) * uint64(total-remaining) / uint64(total))
		if filled != want {
			t.Fatalf("filled = %d, want %d (total=%d remaining=%d)", filled, want, total, remaining)
		}
	})
}

// TestRenderDeterministic checks that rendering the same snapshot twice
// yields identical views.
func TestRenderDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := snap(
			rapid.Uint32Range(1, 7200).Draw(t, "total"),
			rapid.Uint32Range(0, 7200).Draw(t, "remaining"),
			State(rapid.IntRange(0, 3).Draw(t, "state")),
		)
		if Render(s) != Render(s) {
			t.Fatal("identical snapshots rendered differently")
		}
	})
}
