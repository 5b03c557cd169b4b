package mod

import (
	"fmt"
	"strings"

	"voidbot/internal/confirm"

	"github.com/bwmarrin/discordgo"
)

// HandleComponent owns the confirm/cancel buttons armed by kick, ban and
// timeout, and the warning history button attached by warn.
func (m *ModModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	customID := i.MessageComponentData().CustomID

	if userID, ok := strings.CutPrefix(customID, "warnings:view:"); ok {
		m.showWarningHistory(s, i, userID)
		return true
	}
	if userID, ok := strings.CutPrefix(customID, "warnings:clear:"); ok {
		m.clearWarningHistory(s, i, userID)
		return true
	}

	verb, key, ok := confirm.ParseID(customID)
	if !ok {
		return false
	}
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	presserID := i.Member.User.ID

	action, targetID := splitKey(key)

	switch verb {
	case "confirm":
		res, err := m.deps.Confirm.Confirm(key, presserID)
		switch res {
		case confirm.ResultExecuted:
			if err != nil {
				m.deps.Config.Logger.Error("Moderation action failed", "action", action, "error", err)
				m.updateContent(s, i, fmt.Sprintf("❌ Failed to %s <@%s>: %v", action, targetID, err))
				return true
			}
			m.updateContent(s, i, fmt.Sprintf("✅ Successfully applied **%s** to <@%s>.", action, targetID))
		case confirm.ResultWrongUser:
			m.respondEphemeral(s, i, "❌ Only the moderator who started this action can confirm it.")
		case confirm.ResultNotFound:
			m.updateContent(s, i, "⌛ This confirmation has expired.")
		}
		return true

	case "cancel":
		switch m.deps.Confirm.Cancel(key, presserID) {
		case confirm.ResultExecuted:
			m.updateContent(s, i, fmt.Sprintf("❌ %s cancelled.", titleAction(action)))
		case confirm.ResultWrongUser:
			m.respondEphemeral(s, i, "❌ Only the moderator who started this action can cancel it.")
		case confirm.ResultNotFound:
			m.updateContent(s, i, "⌛ This confirmation has expired.")
		}
		return true
	}
	return false
}

func (m *ModModule) showWarningHistory(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	warnings, err := m.deps.DB.GetWarnings(i.GuildID, userID)
	if err != nil {
		m.deps.Config.Logger.Error("Failed to load warnings", "user", userID, "error", err)
		m.respondEphemeral(s, i, "❌ Failed to load the warning history.")
		return
	}

	components := []discordgo.MessageComponent{}
	if len(warnings) > 0 {
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "🧹 Clear Warnings",
				Style:    discordgo.DangerButton,
				CustomID: clearWarningsID(userID),
			},
		}})
	}

	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{warningHistoryEmbed(userID, warnings)},
			Components: components,
		},
	})
}

// clearWarningHistory wipes a member's warning record. The button only sits
// on the history view, which itself hangs off the moderator-only warn reply.
func (m *ModModule) clearWarningHistory(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	removed, err := m.deps.DB.ClearWarnings(i.GuildID, userID)
	if err != nil {
		m.deps.Config.Logger.Error("Failed to clear warnings", "user", userID, "error", err)
		m.respondEphemeral(s, i, "❌ Failed to clear the warning history.")
		return
	}

	moderator := "unknown"
	if i.Member != nil && i.Member.User != nil {
		moderator = i.Member.User.Username
	}
	m.opts.LogModAction(m.deps.Config, s, "clearwarnings", userID, moderator,
		fmt.Sprintf("%d warning(s) removed", removed))
	if lErr := m.opts.LogToChannel(m.deps.Config, s,
		fmt.Sprintf("Warning history for <@%s> cleared by %s (%d removed).", userID, moderator, removed)); lErr != nil {
		m.deps.Config.Logger.Warn("Failed to post to log channel", "error", lErr)
	}

	m.updateContent(s, i, fmt.Sprintf("🧹 Cleared **%d** warning(s) for <@%s>.", removed, userID))
}

// updateContent replaces the preview message, dropping its buttons so a
// resolved action cannot be clicked again.
func (m *ModModule) updateContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}

func (m *ModModule) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// splitKey recovers the action and target from a correlation key built by
// confirm.Key.
func splitKey(key string) (action, targetID string) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return key, ""
	}
	return parts[0], parts[1]
}
