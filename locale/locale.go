// Package locale holds the user-facing message catalog for the timer bot.
// Languages form a closed set; every template exists in all of them so a
// missing translation is a compile-time review problem, not a runtime one.
package locale

import "fmt"

// Language selects a message catalog. The zero value is not valid; use Parse
// or the exported constants.
type Language string

const (
	English Language = "english"
	French  Language = "french"
)

// Parse maps a stored language name onto a Language, defaulting to English
// for anything unrecognized.
func Parse(s string) Language {
	switch s {
	case string(French), "fr", "français", "francais":
		return French
	default:
		return English
	}
}

// milestoneTexts is keyed by remaining-second threshold. The single-digit
// thresholds render as a bare countdown in both languages.
var milestoneTexts = map[int]map[Language]string{
	300: {
		English: "⏱️ 5 minutes remaining, %s!",
		French:  "⏱️ Il reste 5 minutes, %s !",
	},
	180: {
		English: "⏱️ 3 minutes remaining, %s!",
		French:  "⏱️ Il reste 3 minutes, %s !",
	},
	60: {
		English: "⏱️ 1 minute remaining, %s!",
		French:  "⏱️ Il reste 1 minute, %s !",
	},
	30: {
		English: "⚠️ 30 seconds remaining, %s!",
		French:  "⚠️ Il reste 30 secondes, %s !",
	},
	10: {
		English: "🔥 10 seconds, %s!",
		French:  "🔥 10 secondes, %s !",
	},
}

// Milestone renders the side-channel message for a crossed threshold. The
// mention argument is the platform-formatted mention of the timer owner.
func Milestone(lang Language, threshold int, mention string) string {
	if t, ok := milestoneTexts[threshold]; ok {
		return fmt.Sprintf(t[lang], mention)
	}
	// Final countdown (5..1) is language-neutral apart from the mention.
	return fmt.Sprintf("**%d** %s", threshold, mention)
}

// Finish is the side-channel message sent when a timer runs out.
func Finish(lang Language, mention string) string {
	if lang == French {
		return fmt.Sprintf("⏰ Le temps est écoulé, %s !", mention)
	}
	return fmt.Sprintf("⏰ Time's up, %s!", mention)
}

// Stopped is the side-channel message sent when a timer is stopped early.
func Stopped(lang Language, mention string) string {
	if lang == French {
		return fmt.Sprintf("⏹️ Chronomètre arrêté, %s.", mention)
	}
	return fmt.Sprintf("⏹️ Timer stopped, %s.", mention)
}

// ExtendAck acknowledges a granted extension, in seconds.
func ExtendAck(lang Language, seconds int) string {
	if lang == French {
		return fmt.Sprintf("➕ %d secondes ajoutées au chronomètre.", seconds)
	}
	return fmt.Sprintf("➕ Added %d seconds to the timer.", seconds)
}

// StartedAck confirms timer creation to the invoker.
func StartedAck(lang Language, minutes, seconds int) string {
	if lang == French {
		return fmt.Sprintf("✅ Chronomètre lancé : %d min %d s.", minutes, seconds)
	}
	return fmt.Sprintf("✅ Timer started: %d min %d s.", minutes, seconds)
}

// LanguageSet confirms a guild language change.
func LanguageSet(lang Language) string {
	if lang == French {
		return "✅ Langue du serveur définie sur le français."
	}
	return "✅ Server language set to English."
}

// NotifyAck acknowledges the notify button.
func NotifyAck(lang Language) string {
	if lang == French {
		return "🔔 Vous serez mentionné aux étapes importantes."
	}
	return "🔔 You will be mentioned at the key milestones."
}

// Refusal tags map control-surface rejections onto user-facing text. Tags are
// stable identifiers, not sentences; the sentences live here.
type Refusal int

const (
	RefusalDurationOutOfRange Refusal = iota
	RefusalAlreadyRunning
	RefusalNoTimer
	RefusalNotOwner
	RefusalAdminRequired
)

var refusalTexts = map[Refusal]map[Language]string{
	RefusalDurationOutOfRange: {
		English: "Duration must be between 1 second and 120 minutes (e.g. `start 7 30`).",
		French:  "La durée doit être comprise entre 1 seconde et 120 minutes (ex. `start 7 30`).",
	},
	RefusalAlreadyRunning: {
		English: "You already have a timer running in this channel. Stop it first.",
		French:  "Vous avez déjà un chronomètre dans ce salon. Arrêtez-le d'abord.",
	},
	RefusalNoTimer: {
		English: "You have no timer running in this channel.",
		French:  "Vous n'avez aucun chronomètre dans ce salon.",
	},
	RefusalNotOwner: {
		English: "Only the person who started this timer can control it.",
		French:  "Seule la personne qui a lancé ce chronomètre peut le contrôler.",
	},
	RefusalAdminRequired: {
		English: "You need administrator permissions for that.",
		French:  "Vous devez être administrateur pour faire cela.",
	},
}

// RefusalText renders a refusal tag in the given language.
func RefusalText(lang Language, r Refusal) string {
	return refusalTexts[r][lang]
}
