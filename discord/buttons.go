package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// Button custom ids carry the full timer identity so handlers stay stateless:
// "timer:<action>:<user_id>:<channel_id>". No handler closes over timer state.
const customIDPrefix = "timer"

type buttonAction string

const (
	actionPause  buttonAction = "pause"
	actionResume buttonAction = "resume"
	actionStop   buttonAction = "stop"
	actionExtend buttonAction = "extend"
	actionNotify buttonAction = "notify"
)

// customID encodes an action and key into a component custom id.
func customID(a buttonAction, key timer.Key) string {
	return fmt.Sprintf("%s:%s:%d:%d", customIDPrefix, a, key.UserID, key.ChannelID)
}

// parseCustomID decodes a component custom id. Unknown or foreign ids return
// ok=false and are ignored by the router.
func parseCustomID(id string) (buttonAction, timer.Key, bool) {
	parts := strings.Split(id, ":")
	if len(parts) != 4 || parts[0] != customIDPrefix {
		return "", timer.Key{}, false
	}
	action := buttonAction(parts[1])
	switch action {
	case actionPause, actionResume, actionStop, actionExtend, actionNotify:
	default:
		return "", timer.Key{}, false
	}
	userID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return "", timer.Key{}, false
	}
	channelID, err := strconv.ParseUint(parts[3], 10, 64)
	if err != nil {
		return "", timer.Key{}, false
	}
	return action, timer.Key{UserID: userID, ChannelID: channelID}, true
}
