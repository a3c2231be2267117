package timer

// EventKind enumerates the control operations a running timer understands.
type EventKind int

const (
	EventPause EventKind = iota
	EventResume
	EventStop
	EventExtend
	EventNotifyAck
)

func (k EventKind) String() string {
	switch k {
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventStop:
		return "stop"
	case EventExtend:
		return "extend"
	case EventNotifyAck:
		return "notify_ack"
	default:
		return "unknown"
	}
}

// Event is the message delivered from the control surface to a driver. The
// surface rejects non-owner events before they are enqueued, so ActorID is
// carried for logging only.
type Event struct {
	Kind    EventKind
	ActorID uint64
	// Extend carries the added seconds for EventExtend; zero otherwise.
	Extend uint32
}
