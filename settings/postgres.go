package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

// lookupTimeout bounds the per-message language lookup so a slow database
// can never stall a driver tick.
const lookupTimeout = 2 * time.Second

// Postgres is the production Store backed by the guild_settings table.
type Postgres struct {
	DB      *sql.DB
	Default locale.Language
}

// NewPostgres wraps an open connection.
func NewPostgres(db *sql.DB, def locale.Language) *Postgres {
	return &Postgres{DB: db, Default: def}
}

// Language returns the stored language for the guild, or the default on miss,
// timeout, or query failure. Failures are logged, never surfaced.
func (p *Postgres) Language(ctx context.Context, guildID uint64) locale.Language {
	qctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	var lang string
	err := p.DB.QueryRowContext(qctx,
		`SELECT language FROM guild_settings WHERE guild_id = $1`, int64(guildID)).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return p.Default
	}
	if err != nil {
		slog.Warn("guild language lookup failed; using default",
			slog.Uint64("guild_id", guildID), slog.Any("err", err))
		return p.Default
	}
	return locale.Parse(lang)
}

// SetLanguage upserts the guild language.
func (p *Postgres) SetLanguage(ctx context.Context, guildID uint64, lang locale.Language) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO guild_settings (guild_id, language, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (guild_id) DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()`,
		int64(guildID), string(lang))
	if err != nil {
		return fmt.Errorf("set guild language: %w", err)
	}
	return nil
}
