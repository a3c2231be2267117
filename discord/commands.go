package discord

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
	"github.com/Taraldinn/hear-hear-bot-sub000/telemetry"
	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// handlerTimeout bounds the work done for one command or button press.
const handlerTimeout = 10 * time.Second

func commandDefinitions() []*discordgo.ApplicationCommand {
	minZero := float64(0)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "start",
			Description: "Start a speech timer in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "minutes",
					Description: "Minutes (0-120)",
					Required:    true,
					MinValue:    &minZero,
					MaxValue:    120,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "seconds",
					Description: "Seconds (0-59)",
					Required:    false,
					MinValue:    &minZero,
					MaxValue:    59,
				},
			},
		},
		{Name: "pause", Description: "Pause your timer in this channel"},
		{Name: "resume", Description: "Resume your paused timer in this channel"},
		{Name: "stop", Description: "Stop your timer in this channel"},
		{Name: "reset-all", Description: "Stop every running timer (admin)"},
		{
			Name:        "language",
			Description: "Set the bot language for this server (admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "language",
					Description: "Message language",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "English", Value: string(locale.English)},
						{Name: "Français", Value: string(locale.French)},
					},
				},
			},
		},
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(b.rootCtx, handlerTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	guildID := parseSnowflake(i.GuildID)
	channelID := parseSnowflake(i.ChannelID)
	actor := interactionUserID(i)
	lang := b.store.Language(ctx, guildID)
	key := timer.Key{UserID: actor, ChannelID: channelID}
	telemetry.CountCommand(data.Name)

	switch data.Name {
	case "start":
		minutes, seconds := 0, 0
		for _, opt := range data.Options {
			switch opt.Name {
			case "minutes":
				minutes = int(opt.IntValue())
			case "seconds":
				seconds = int(opt.IntValue())
			}
		}
		err := b.surface.Start(ctx, timer.StartRequest{
			GuildID:   guildID,
			ChannelID: channelID,
			UserID:    actor,
			Minutes:   minutes,
			Seconds:   seconds,
		})
		if err != nil {
			b.respondEphemeral(s, i, b.refusalText(lang, err))
			return
		}
		b.respondEphemeral(s, i, locale.StartedAck(lang, minutes, seconds))

	case "pause":
		b.respondControl(s, i, lang, b.surface.Pause(key, actor), "")
	case "resume":
		b.respondControl(s, i, lang, b.surface.Resume(key, actor), "")
	case "stop":
		b.respondControl(s, i, lang, b.surface.Stop(key, actor), "")

	case "reset-all":
		n, err := b.surface.ResetAll(interactionIsAdmin(i))
		if err != nil {
			b.respondEphemeral(s, i, b.refusalText(lang, err))
			return
		}
		b.respondEphemeral(s, i, "⏹️ Stopping "+strconv.Itoa(n)+" timer(s).")

	case "language":
		if !interactionIsAdmin(i) {
			b.respondEphemeral(s, i, locale.RefusalText(lang, locale.RefusalAdminRequired))
			return
		}
		chosen := locale.Parse(data.Options[0].StringValue())
		if err := b.store.SetLanguage(ctx, guildID, chosen); err != nil {
			b.log.Error("set guild language failed", slog.Uint64("guild_id", guildID), slog.Any("err", err))
			b.respondEphemeral(s, i, "Could not save the language setting.")
			return
		}
		b.respondEphemeral(s, i, locale.LanguageSet(chosen))
	}
}

// handleComponent routes a button press. Handlers are stateless: the custom
// id alone identifies the timer, so nothing here closes over engine state.
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, key, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(b.rootCtx, handlerTimeout)
	defer cancel()

	// Acknowledge immediately; any user-visible reply goes out as an
	// ephemeral followup through the messaging port.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		b.log.Debug("component ack failed", slog.Any("err", err))
	}

	guildID := parseSnowflake(i.GuildID)
	actor := interactionUserID(i)
	lang := b.store.Language(ctx, guildID)
	telemetry.CountCommand("button_" + string(action))

	var err error
	var ack string
	switch action {
	case actionPause:
		err = b.surface.Pause(key, actor)
	case actionResume:
		err = b.surface.Resume(key, actor)
	case actionStop:
		err = b.surface.Stop(key, actor)
	case actionExtend:
		err = b.surface.Extend(key, actor, 60)
		ack = locale.ExtendAck(lang, 60)
	case actionNotify:
		err = b.surface.Notify(key, actor)
		ack = locale.NotifyAck(lang)
	}

	if err != nil {
		if rerr := b.msgr.ReplyPrivate(ctx, i.Token, b.refusalText(lang, err)); rerr != nil {
			b.log.Debug("refusal reply failed", slog.Any("err", rerr))
		}
		return
	}
	if ack != "" {
		if rerr := b.msgr.ReplyPrivate(ctx, i.Token, ack); rerr != nil {
			b.log.Debug("ack reply failed", slog.Any("err", rerr))
		}
	}
}

// onMessage implements the prefix form of the command vocabulary.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || !strings.HasPrefix(m.Content, b.prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, b.prefix))
	if len(fields) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(b.rootCtx, handlerTimeout)
	defer cancel()

	verb := strings.ToLower(fields[0])
	guildID := parseSnowflake(m.GuildID)
	channelID := parseSnowflake(m.ChannelID)
	actor := parseSnowflake(m.Author.ID)
	lang := b.store.Language(ctx, guildID)
	key := timer.Key{UserID: actor, ChannelID: channelID}

	reply := func(content string) {
		if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
			b.log.Debug("prefix reply failed", slog.Any("err", err))
		}
	}

	switch verb {
	case "start":
		minutes, seconds := 0, 0
		var err error
		if len(fields) > 1 {
			if minutes, err = strconv.Atoi(fields[1]); err != nil {
				reply(locale.RefusalText(lang, locale.RefusalDurationOutOfRange))
				return
			}
		}
		if len(fields) > 2 {
			if seconds, err = strconv.Atoi(fields[2]); err != nil {
				reply(locale.RefusalText(lang, locale.RefusalDurationOutOfRange))
				return
			}
		}
		telemetry.CountCommand("start")
		err = b.surface.Start(ctx, timer.StartRequest{
			GuildID:   guildID,
			ChannelID: channelID,
			UserID:    actor,
			Minutes:   minutes,
			Seconds:   seconds,
		})
		if err != nil {
			reply(b.refusalText(lang, err))
		}

	case "pause", "resume", "stop":
		telemetry.CountCommand(verb)
		var err error
		switch verb {
		case "pause":
			err = b.surface.Pause(key, actor)
		case "resume":
			err = b.surface.Resume(key, actor)
		case "stop":
			err = b.surface.Stop(key, actor)
		}
		if err != nil {
			reply(b.refusalText(lang, err))
		}

	case "reset-all":
		telemetry.CountCommand("reset-all")
		n, err := b.surface.ResetAll(messageIsAdmin(s, m))
		if err != nil {
			reply(b.refusalText(lang, err))
			return
		}
		reply("⏹️ Stopping " + strconv.Itoa(n) + " timer(s).")

	case "language":
		telemetry.CountCommand("language")
		if !messageIsAdmin(s, m) {
			reply(locale.RefusalText(lang, locale.RefusalAdminRequired))
			return
		}
		if len(fields) < 2 {
			reply(locale.RefusalText(lang, locale.RefusalDurationOutOfRange))
			return
		}
		chosen := locale.Parse(fields[1])
		if err := b.store.SetLanguage(ctx, guildID, chosen); err != nil {
			b.log.Error("set guild language failed", slog.Uint64("guild_id", guildID), slog.Any("err", err))
			return
		}
		reply(locale.LanguageSet(chosen))
	}
}

// refusalText renders a control-surface error for the user; unexpected errors
// get a neutral sentence and a log line.
func (b *Bot) refusalText(lang locale.Language, err error) string {
	if tag, ok := timer.RefusalFor(err); ok {
		return locale.RefusalText(lang, tag)
	}
	b.log.Error("command failed", slog.Any("err", err))
	if lang == locale.French {
		return "Une erreur est survenue. Réessayez."
	}
	return "Something went wrong. Try again."
}

func (b *Bot) respondControl(s *discordgo.Session, i *discordgo.InteractionCreate, lang locale.Language, err error, ack string) {
	if err != nil {
		b.respondEphemeral(s, i, b.refusalText(lang, err))
		return
	}
	if ack == "" {
		ack = "👍"
	}
	b.respondEphemeral(s, i, ack)
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Debug("interaction respond failed", slog.Any("err", err))
	}
}

// interactionUserID returns the acting user for guild or DM interactions.
func interactionUserID(i *discordgo.InteractionCreate) uint64 {
	if i.Member != nil && i.Member.User != nil {
		return parseSnowflake(i.Member.User.ID)
	}
	if i.User != nil {
		return parseSnowflake(i.User.ID)
	}
	return 0
}

// interactionIsAdmin checks the administrator bit on the invoking member.
func interactionIsAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// messageIsAdmin resolves channel permissions for a prefix command author.
func messageIsAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.State.MessagePermissions(m.Message)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// parseSnowflake converts a Discord id to its numeric form; malformed ids
// yield zero, which never matches a real key.
func parseSnowflake(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}
