// Package settings stores per-guild configuration. The only setting today is
// the message language; the store interface keeps the timer engine decoupled
// from where it lives (Postgres in production, memory in tests and DB-less
// deployments).
package settings

import (
	"context"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

// Store reads and writes per-guild settings. Language must never fail the
// caller: lookups that error or miss return the default language.
type Store interface {
	Language(ctx context.Context, guildID uint64) locale.Language
	SetLanguage(ctx context.Context, guildID uint64, lang locale.Language) error
}
