package mod

import (
	"fmt"

	"voidbot/internal/database"
	"voidbot/internal/utils"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

// warningsPerHistoryPage caps how many warnings the history embed shows.
const warningsPerHistoryPage = 5

var warnDMTemplate = heredoc.Doc(`
	You have been warned in %s.
	Reason: %s
	This is warning #%d on your record.
`)

func viewWarningsID(userID string) string {
	return "warnings:view:" + userID
}

func clearWarningsID(userID string) string {
	return "warnings:clear:" + userID
}

// Warnings are not destructive, so they skip the confirm flow and are
// recorded immediately.
func (m *ModModule) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	if i.Member == nil || i.Member.User == nil {
		m.editEphemeral(s, i, "❌ This command can only be used in a server.")
		return
	}

	data := i.ApplicationCommandData()
	var targetID, reason string
	for _, opt := range data.Options {
		switch opt.Name {
		case "target":
			targetID = opt.Value.(string)
		case "reason":
			reason = opt.StringValue()
		}
	}

	if targetID == "" || data.Resolved == nil || data.Resolved.Users[targetID] == nil {
		m.editEphemeral(s, i, "❌ Could not resolve the specified user.")
		return
	}
	target := data.Resolved.Users[targetID]

	if _, err := m.opts.GuildMember(s, i.GuildID, target.ID); err != nil {
		m.editEphemeral(s, i, "❌ That user is not in this server.")
		return
	}

	count, err := m.deps.DB.AddWarning(i.GuildID, target.ID, i.Member.User.ID, reason)
	if err != nil {
		m.deps.Config.Logger.Error("Failed to record warning", "user", target.ID, "error", err)
		m.editEphemeral(s, i, "❌ Failed to record the warning.")
		return
	}

	guildName := i.GuildID
	if g, gerr := m.opts.Guild(s, i.GuildID); gerr == nil {
		guildName = g.Name
	}
	m.dmBestEffort(s, target, fmt.Sprintf(warnDMTemplate, guildName, reason, count))

	m.opts.LogModAction(m.deps.Config, s, "warn", target.Username, i.Member.User.Username, reason)

	embed := utils.NewEmbed()
	embed.Title = "⚠️ Member Warned"
	embed.Color = utils.Colors.Warning()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "👤 Member", Value: fmt.Sprintf("<@%s> (%s)", target.ID, target.ID), Inline: true},
		{Name: "🛡️ Moderator", Value: i.Member.User.Username, Inline: true},
		{Name: "📊 Total Warnings", Value: fmt.Sprintf("%d", count), Inline: true},
		{Name: "📝 Reason", Value: reason},
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "📋 View All Warnings",
				Style:    discordgo.SecondaryButton,
				CustomID: viewWarningsID(target.ID),
			},
		}},
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func warningHistoryEmbed(userID string, warnings []database.Warning) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "⚠️ Warning History"
	embed.Color = utils.Colors.Warning()

	if len(warnings) == 0 {
		embed.Description = fmt.Sprintf("<@%s> has no warnings.", userID)
		return embed
	}

	embed.Description = fmt.Sprintf("<@%s> has **%d** warning(s).", userID, len(warnings))
	shown := warnings
	if len(shown) > warningsPerHistoryPage {
		shown = shown[:warningsPerHistoryPage]
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing %d most recent of %d warnings", warningsPerHistoryPage, len(warnings)),
		}
	}
	for _, w := range shown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("Warning #%d", w.ID),
			Value: fmt.Sprintf("**Reason:** %s\n**Moderator:** <@%s>\n**Issued:** <t:%d:d>",
				w.Reason, w.ModeratorID, w.CreatedAt.Unix()),
		})
	}
	return embed
}
