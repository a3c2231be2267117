package discord

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// Messenger implements the engine's messaging port on a discordgo session.
// Every failure is classified into a timer.AdapterError so the engine can log
// a stable kind without importing discordgo.
type Messenger struct {
	session *discordgo.Session
	// appID is the application id used for interaction followup webhooks.
	appID string
}

// NewMessenger wraps an open session.
func NewMessenger(session *discordgo.Session, appID string) *Messenger {
	return &Messenger{session: session, appID: appID}
}

var _ timer.Messenger = (*Messenger)(nil)

func (m *Messenger) PostTimer(ctx context.Context, channelID uint64, v timer.View) (timer.MessageRef, error) {
	msg, err := m.session.ChannelMessageSendComplex(snowflake(channelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{buildEmbed(v)},
		Components: buildComponents(v),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return timer.MessageRef{}, classify(err)
	}
	return timer.MessageRef{ChannelID: channelID, MessageID: msg.ID}, nil
}

func (m *Messenger) EditTimer(ctx context.Context, ref timer.MessageRef, v timer.View) error {
	embeds := []*discordgo.MessageEmbed{buildEmbed(v)}
	components := buildComponents(v)
	_, err := m.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    snowflake(ref.ChannelID),
		ID:         ref.MessageID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return classify(err)
	}
	return nil
}

func (m *Messenger) SendText(ctx context.Context, channelID uint64, content string) error {
	_, err := m.session.ChannelMessageSend(snowflake(channelID), content, discordgo.WithContext(ctx))
	if err != nil {
		return classify(err)
	}
	return nil
}

// ReplyPrivate posts an ephemeral followup on an already-acknowledged
// interaction. Interaction followups are webhooks keyed by application id and
// interaction token, which is why the engine only needs to carry the token.
func (m *Messenger) ReplyPrivate(ctx context.Context, interactionToken string, content string) error {
	_, err := m.session.WebhookExecute(m.appID, interactionToken, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return classify(err)
	}
	return nil
}

func (m *Messenger) DeleteTimer(ctx context.Context, ref timer.MessageRef) error {
	err := m.session.ChannelMessageDelete(snowflake(ref.ChannelID), ref.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify maps discordgo errors onto the engine's adapter error taxonomy.
func classify(err error) error {
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return &timer.AdapterError{Kind: timer.AdapterRateLimited, RetryAfter: rl.RetryAfter, Err: err}
	}
	var re *discordgo.RESTError
	if errors.As(err, &re) && re.Response != nil {
		switch re.Response.StatusCode {
		case http.StatusNotFound:
			return &timer.AdapterError{Kind: timer.AdapterNotFound, Err: err}
		case http.StatusForbidden:
			return &timer.AdapterError{Kind: timer.AdapterForbidden, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &timer.AdapterError{Kind: timer.AdapterTimeout, Err: err}
	}
	return &timer.AdapterError{Kind: timer.AdapterOther, Err: err}
}

// snowflake renders a numeric id in Discord's wire format.
func snowflake(id uint64) string { return strconv.FormatUint(id, 10) }
