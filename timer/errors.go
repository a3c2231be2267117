package timer

import (
	"errors"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

// Control-surface refusals. These are returned to the platform binding, which
// renders them as localized private replies; none of them ever mutate
// registry or handle state.
var (
	ErrDurationOutOfRange = errors.New("timer: duration out of range")
	ErrAlreadyRunning     = errors.New("timer: a timer already exists for this user and channel")
	ErrNoTimer            = errors.New("timer: no timer for this user and channel")
	ErrNotOwner           = errors.New("timer: only the owner may control this timer")
	ErrAdminRequired      = errors.New("timer: administrator privilege required")
)

// RefusalFor maps a control-surface error onto its message-catalog tag.
// Adapter and internal errors have no user-facing refusal and return false.
func RefusalFor(err error) (locale.Refusal, bool) {
	switch {
	case errors.Is(err, ErrDurationOutOfRange):
		return locale.RefusalDurationOutOfRange, true
	case errors.Is(err, ErrAlreadyRunning):
		return locale.RefusalAlreadyRunning, true
	case errors.Is(err, ErrNoTimer):
		return locale.RefusalNoTimer, true
	case errors.Is(err, ErrNotOwner):
		return locale.RefusalNotOwner, true
	case errors.Is(err, ErrAdminRequired):
		return locale.RefusalAdminRequired, true
	}
	return 0, false
}
