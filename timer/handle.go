package timer

import "time"

// State is the lifecycle state of a timer. Stopped and Finished are terminal.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateStopped
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool { return s == StateStopped || s == StateFinished }

const (
	// MaxDuration is the session ceiling: no timer may be created with, or
	// extended beyond, two hours.
	MaxDuration = 7200

	// eventQueueSize bounds the per-timer control queue. Control events are
	// human button presses; the queue never realistically fills.
	eventQueueSize = 16
)

// MessageRef locates the rendered embed in the external channel. Opaque to
// the engine; only the messaging adapter interprets it.
type MessageRef struct {
	ChannelID uint64
	MessageID string
}

// Handle is the live record for one timer. All fields are owned by the
// driver goroutine after launch (the control surface only writes msg before
// the driver starts and sends on events afterwards).
type Handle struct {
	key     Key
	guildID uint64
	ownerID uint64

	initialTotal uint32
	hardCap      uint32
	remaining    uint32
	state        State

	msg       MessageRef
	createdAt time.Time

	// rate-gate bookkeeping
	lastPushAt    time.Time
	lastPushState State
	pushedOnce    bool

	// one-shot milestone bookkeeping, bit i set when milestoneSet[i] fired
	fired uint16

	events chan Event
}

// newHandle captures the immutable identity and the starting countdown value.
func newHandle(key Key, guildID uint64, total uint32, now time.Time) *Handle {
	cap := (total + 3599) / 3600 * 3600
	if cap > MaxDuration {
		cap = MaxDuration
	}
	return &Handle{
		key:          key,
		guildID:      guildID,
		ownerID:      key.UserID,
		initialTotal: total,
		hardCap:      cap,
		remaining:    total,
		state:        StateRunning,
		createdAt:    now,
		events:       make(chan Event, eventQueueSize),
	}
}

// Key returns the timer identity.
func (h *Handle) Key() Key { return h.key }

// OwnerID returns the only principal allowed to control this timer.
func (h *Handle) OwnerID() uint64 { return h.ownerID }

// apply advances the state machine by one control event. Terminal states
// ignore everything.
func (h *Handle) apply(ev Event) {
	if h.state.Terminal() {
		return
	}
	switch ev.Kind {
	case EventPause:
		if h.state == StateRunning {
			h.state = StatePaused
		}
	case EventResume:
		if h.state == StatePaused {
			h.state = StateRunning
		}
	case EventStop:
		h.state = StateStopped
		h.remaining = 0
	case EventExtend:
		// Clamp at the session ceiling; overflow is silent.
		r := h.remaining + ev.Extend
		if r > h.hardCap || r < h.remaining { // second clause guards uint32 wrap
			r = h.hardCap
		}
		h.remaining = r
	case EventNotifyAck:
		// acknowledged at the surface; nothing to do here
	}
}

// tickDown applies one elapsed second while running. Hitting zero finishes
// the timer.
func (h *Handle) tickDown() {
	if h.state != StateRunning {
		return
	}
	h.remaining--
	if h.remaining == 0 {
		h.state = StateFinished
	}
}

// drain applies every queued control event in FIFO order. Called by the
// driver at the top of each tick so a pause that arrived during sleep is
// honored before the decrement.
func (h *Handle) drain() {
	for {
		select {
		case ev := <-h.events:
			h.apply(ev)
		default:
			return
		}
	}
}

// Snapshot is the immutable projection input: everything the renderer needs
// and nothing it can mutate.
type Snapshot struct {
	Key          Key
	OwnerID      uint64
	InitialTotal uint32
	Remaining    uint32
	State        State
}

func (h *Handle) snapshot() Snapshot {
	return Snapshot{
		Key:          h.key,
		OwnerID:      h.ownerID,
		InitialTotal: h.initialTotal,
		Remaining:    h.remaining,
		State:        h.state,
	}
}
