package utils

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

var standardEmbedFooter = &discordgo.MessageEmbedFooter{
	Text: "Void Esports • Run /help for more options",
}

// NewEmbed creates a new embed with the standard footer and brand color
func NewEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:  Colors.Brand(),
		Footer: standardEmbedFooter,
	}
}

// NewOKEmbed creates a new success embed with the given title and description
func NewOKEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       Colors.Ok(),
		Footer:      standardEmbedFooter,
	}
}

// NewErrorEmbed creates a new error embed with the given title and description
func NewErrorEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: description,
		Color:       Colors.Error(),
		Footer:      standardEmbedFooter,
	}
}

// Truncate shortens s to fit an embed field limit, marking the cut with an
// ellipsis.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}

// ThumbnailIfValid returns an embed thumbnail for url, or nil when the url
// is not an http(s) link Discord would accept.
func ThumbnailIfValid(url string) *discordgo.MessageEmbedThumbnail {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: url}
}
