package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Taraldinn/hear-hear-bot-sub000/timer"
)

// buildEmbed translates an engine view into a Discord embed. The mapping is
// mechanical: the view already decided colors, labels, and media.
func buildEmbed(v timer.View) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "⏱️ " + v.Title,
		Color:       v.Color,
		Description: fmt.Sprintf("`%s`", v.Progress),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Time Remaining", Value: "**" + v.Countdown + "**", Inline: true},
			{Name: "Status", Value: v.Status, Inline: true},
			{Name: "Speaker", Value: fmt.Sprintf("<@%d>", v.OwnerID), Inline: true},
		},
	}
	if v.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: v.Footer}
	}
	if v.ShowFinishedMedia && v.MediaURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: v.MediaURL}
	}
	return e
}

// buildComponents renders the action row for a view. Terminal frames keep the
// buttons visible but disabled so the embed's history stays readable.
func buildComponents(v timer.View) []discordgo.MessageComponent {
	key := timer.Key{UserID: v.OwnerID, ChannelID: v.ChannelID}
	terminal := v.State.Terminal()

	pauseResume := discordgo.Button{
		Label:    "Pause",
		Style:    discordgo.SecondaryButton,
		CustomID: customID(actionPause, key),
		Disabled: terminal,
	}
	if v.State == timer.StatePaused {
		pauseResume.Label = "Resume"
		pauseResume.Style = discordgo.SuccessButton
		pauseResume.CustomID = customID(actionResume, key)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				pauseResume,
				discordgo.Button{
					Label:    "Stop",
					Style:    discordgo.DangerButton,
					CustomID: customID(actionStop, key),
					Disabled: terminal,
				},
				discordgo.Button{
					Label:    "Add 1min",
					Style:    discordgo.PrimaryButton,
					CustomID: customID(actionExtend, key),
					Disabled: terminal,
				},
				discordgo.Button{
					Label:    "Notify me",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(actionNotify, key),
					Disabled: terminal,
				},
			},
		},
	}
}
