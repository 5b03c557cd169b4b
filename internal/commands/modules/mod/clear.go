package mod

import (
	"fmt"
	"time"

	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	clearMaxAmount = 100

	// bulkDeleteMaxAge is Discord's hard limit for bulk deletion.
	bulkDeleteMaxAge = 14 * 24 * time.Hour
)

func (m *ModModule) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	if i.Member == nil || i.Member.User == nil {
		m.editEphemeral(s, i, "❌ This command can only be used in a server.")
		return
	}

	data := i.ApplicationCommandData()
	amount := 0
	var targetID string
	for _, opt := range data.Options {
		switch opt.Name {
		case "amount":
			amount = int(opt.IntValue())
		case "target":
			targetID = opt.Value.(string)
		}
	}

	if amount < 1 || amount > clearMaxAmount {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Amount must be between 1 and %d.", clearMaxAmount))
		return
	}

	// Over-fetch when filtering by author so the amount refers to the
	// target's messages, not the channel's.
	fetchLimit := amount
	if targetID != "" {
		fetchLimit = clearMaxAmount
	}

	messages, err := m.opts.ChannelMessages(s, i.ChannelID, fetchLimit)
	if err != nil {
		m.deps.Config.Logger.Error("Failed to fetch messages for clear", "channel", i.ChannelID, "error", err)
		m.editEphemeral(s, i, "❌ Failed to fetch messages.")
		return
	}

	ids := DeletableMessageIDs(messages, targetID, amount, time.Now())
	if len(ids) == 0 {
		m.editEphemeral(s, i, "❌ No deletable messages found. Messages older than 14 days cannot be bulk deleted.")
		return
	}

	if err := m.opts.BulkDelete(s, i.ChannelID, ids); err != nil {
		m.deps.Config.Logger.Error("Bulk delete failed", "channel", i.ChannelID, "error", err)
		m.editEphemeral(s, i, "❌ Failed to clear messages.")
		return
	}

	embed := utils.NewOKEmbed("🧹 Messages Cleared",
		fmt.Sprintf("Successfully cleared **%d** message(s)", len(ids)))
	targetValue := "All users"
	if targetID != "" {
		targetValue = fmt.Sprintf("<@%s>", targetID)
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "📍 Channel", Value: fmt.Sprintf("<#%s>", i.ChannelID), Inline: true},
		{Name: "👤 Target", Value: targetValue, Inline: true},
		{Name: "🛡️ Moderator", Value: i.Member.User.Username, Inline: true},
	}

	m.opts.LogModAction(m.deps.Config, s, "clear", targetValue, i.Member.User.Username,
		fmt.Sprintf("%d message(s) in <#%s>", len(ids), i.ChannelID))

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// DeletableMessageIDs picks up to limit message IDs eligible for bulk
// deletion: optionally filtered to one author, and never older than
// Discord's 14 day bulk delete cutoff.
func DeletableMessageIDs(messages []*discordgo.Message, authorID string, limit int, now time.Time) []string {
	cutoff := now.Add(-bulkDeleteMaxAge)
	var ids []string
	for _, msg := range messages {
		if len(ids) == limit {
			break
		}
		if authorID != "" && (msg.Author == nil || msg.Author.ID != authorID) {
			continue
		}
		if msg.Timestamp.Before(cutoff) {
			continue
		}
		ids = append(ids, msg.ID)
	}
	return ids
}
