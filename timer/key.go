package timer

// Key is the sole uniqueness axis for timers: one timer per user per channel.
// It is a comparable value type so it can index the registry map directly,
// with no string formatting on the hot path.
type Key struct {
	UserID    uint64
	ChannelID uint64
}
