// Package discord builds chat-message payloads in the shape expected by
// Discord slash-command responses.
package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Shared embed styling.
const (
	ErrorColor = 0xFF0000
	FooterText = "BUXDAO • Putting Community First"
)

// NoMentions disables every mention in a response so owner tags render
// without pinging anyone.
func NoMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

// Footer returns the standard project footer.
func Footer() *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: FooterText}
}

// ErrorEmbed returns a red embed with the given title and description.
func ErrorEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       ErrorColor,
	}
}

// Message wraps embeds into a channel-message interaction response.
func Message(embeds ...*discordgo.MessageEmbed) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			TTS:             false,
			Content:         "",
			Embeds:          embeds,
			AllowedMentions: NoMentions(),
		},
	}
}

// ErrorResponse is a channel-message response carrying a single error embed.
func ErrorResponse(title, description string) *discordgo.InteractionResponse {
	return Message(ErrorEmbed(title, description))
}

// Ephemeral marks a response as visible only to the invoking user.
func Ephemeral(resp *discordgo.InteractionResponse) *discordgo.InteractionResponse {
	if resp.Data != nil {
		resp.Data.Flags |= discordgo.MessageFlagsEphemeral
	}
	return resp
}

// Pong answers a PING interaction.
func Pong() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}
}
