package utils

import (
	"errors"
	"time"

	"voidbot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// LogToChannel posts an informational embed to the configured log channel.
func LogToChannel(cfg *config.Config, s *discordgo.Session, m string) error {
	logEmbed := &discordgo.MessageEmbed{
		Title:       "Void Bot Message",
		Description: m,
		Color:       Colors.Info(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	id := cfg.GetLogChannelID()
	if id == "" {
		return errors.New("unable to log to channel: log_channel_id is not set")
	}

	_, err := s.ChannelMessageSendEmbed(id, logEmbed)
	return err
}

// LogModAction posts a moderation audit embed to the configured moderation
// log channel. A missing channel is not an error; the action already ran.
func LogModAction(cfg *config.Config, s *discordgo.Session, action, targetTag, moderatorTag, reason string) {
	id := cfg.GetModActionLogChannelID()
	if id == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Moderation: " + action,
		Color: Colors.Warning(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: targetTag, Inline: true},
			{Name: "Moderator", Value: moderatorTag, Inline: true},
			{Name: "Reason", Value: reason},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(id, embed); err != nil {
		cfg.Logger.Error("Failed to post moderation log", "action", action, "error", err)
	}
}
