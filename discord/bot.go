// Package discord binds the timer engine to the Discord gateway: it owns the
// session, registers the command vocabulary, and routes slash commands,
// prefix commands, and button interactions into the engine's control surface.
// The engine itself never touches discordgo; it talks through the Messenger
// port implemented here.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Taraldinn/hear-hear-bot-sub000/config"
	"github.com/Taraldinn/hear-hear-bot-sub000/settings"
	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// Bot is the gateway-facing half of the service.
type Bot struct {
	session *discordgo.Session
	surface *timer.Surface
	store   settings.Store
	msgr    *Messenger
	prefix  string
	log     *slog.Logger

	// rootCtx is the process context handlers derive their per-request
	// contexts from; set once in Run before the session opens.
	rootCtx context.Context
}

// New builds the bot around a settings store. The engine surface is attached
// with SetSurface once it exists (the surface needs this bot's messenger, so
// construction is two-phase). The session is created but not opened; call Run.
func New(cfg *config.Config, store settings.Store, log *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		store:   store,
		prefix:  cfg.CommandPrefix,
		log:     log,
	}
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onMessage)
	return b, nil
}

// SetSurface attaches the engine's control surface. Must be called before Run.
func (b *Bot) SetSurface(s *timer.Surface) { b.surface = s }

// Messenger returns the engine-facing messaging adapter for this session.
// Valid only after Run has opened the session (the application id is learned
// from the gateway).
func (b *Bot) Messenger() *Messenger { return b.msgr }

// Run opens the gateway connection, registers the slash-command vocabulary,
// and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.rootCtx = ctx
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.log.Error("discord session close failed", slog.Any("err", err))
		}
	}()

	appID := b.session.State.User.ID
	if b.msgr == nil {
		b.msgr = NewMessenger(b.session, appID)
	} else {
		b.msgr.appID = appID
	}

	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, "", commandDefinitions()); err != nil {
		// Commands may lag behind; the prefix form still works.
		b.log.Error("slash command registration failed", slog.Any("err", err))
	}
	b.log.Info("discord gateway connected",
		slog.String("user", b.session.State.User.Username),
		slog.String("prefix", b.prefix))

	<-ctx.Done()
	return nil
}

// OpenMessenger creates the messaging adapter before Run for wiring that
// needs it early; the application id is filled in once the gateway is open.
func (b *Bot) OpenMessenger() *Messenger {
	if b.msgr == nil {
		b.msgr = NewMessenger(b.session, "")
	}
	return b.msgr
}
