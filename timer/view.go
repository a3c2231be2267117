package timer

import (
	"fmt"
	"strings"
)

// Embed colors by urgency tier.
const (
	colorGreen  = 0x2ECC71
	colorYellow = 0xF1C40F
	colorOrange = 0xE67E22
	colorRed    = 0xE74C3C
	colorGrey   = 0x95A5A6
)

const progressCells = 20

// View is the pure projection of a timer snapshot. The messaging adapter
// turns it into an embed; the engine never touches the chat library.
type View struct {
	Title     string
	Countdown string // MM:SS, zero padded
	Color     int
	Status    string
	OwnerID   uint64
	ChannelID uint64
	Progress  string
	Footer    string
	State     State
	// ShowFinishedMedia asks the adapter to attach the celebration media to
	// the finished frame. MediaURL is filled in by the engine from its
	// configuration; Render itself never sets it.
	ShowFinishedMedia bool
	MediaURL          string
}

// Render computes the view for a snapshot. Deterministic and free of I/O:
// rendering the same snapshot twice yields identical views.
func Render(s Snapshot) View {
	v := View{
		Title:     "Debate Timer",
		Countdown: fmt.Sprintf("%02d:%02d", s.Remaining/60, s.Remaining%60),
		OwnerID:   s.OwnerID,
		ChannelID: s.Key.ChannelID,
		Progress:  progressBar(s.InitialTotal, s.Remaining),
		State:     s.State,
	}

	switch {
	case s.State == StatePaused:
		v.Color, v.Status = colorGrey, "PAUSED"
	case s.State == StateFinished:
		v.Color, v.Status = colorRed, "FINISHED!"
		v.ShowFinishedMedia = true
	case s.State == StateStopped:
		v.Color, v.Status = colorRed, "STOPPED"
	case s.Remaining > 300:
		v.Color, v.Status = colorGreen, "RUNNING"
	case s.Remaining > 60:
		v.Color, v.Status = colorYellow, "RUNNING"
	case s.Remaining > 30:
		v.Color, v.Status = colorOrange, "HURRY UP!"
	default:
		v.Color, v.Status = colorRed, "FINAL COUNTDOWN!"
	}

	if s.State == StateRunning && s.Remaining <= 30 {
		v.Footer = "Time is running out!"
	}
	return v
}

// progressBar returns a fixed-width bar of filled and empty cells tracking
// elapsed fraction: filled = floor(cells * elapsed / total).
func progressBar(total, remaining uint32) string {
	if total == 0 {
		return strings.Repeat("▱", progressCells)
	}
	filled := int(uint64(progressCells) * uint64(total-remaining) / uint64(total))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressCells-filled)
}
