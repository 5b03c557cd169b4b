package help

import (
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// helpCommandsEmbed creates the help embed, optionally narrowed to one
// command category.
func helpCommandsEmbed(category string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🟣 Void Esports Bot - Help",
		Description: "The official Void Esports server bot, mirroring [voidesports.org](https://voidesports.org).",
		Color:       utils.Colors.Brand(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /help category:pros | content | utility to filter",
		},
	}

	switch category {
	case "pros":
		embed.Fields = rosterHelpFields()
	case "content":
		embed.Fields = websiteHelpFields()
	case "utility":
		embed.Fields = append(moderatorHelpFields(), botHelpFields()...)
	default:
		embed.Fields = rosterHelpFields()
		embed.Fields = append(embed.Fields, websiteHelpFields()...)
		embed.Fields = append(embed.Fields, moderatorHelpFields()...)
		embed.Fields = append(embed.Fields, botHelpFields()...)
	}
	return embed
}

func rosterHelpFields() []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "🎮 Roster Commands:",
			Inline: false,
		},
		{
			Name:   "/pros_list",
			Value:  "Browse the pro roster page by page\n• Use `game:GameName` to filter by title",
			Inline: false,
		},
		{
			Name:   "/pro_info",
			Value:  "Look up one pro's full profile\n• Use `/pro_info name:PlayerName`",
			Inline: false,
		},
		{
			Name:   "/pros_total",
			Value:  "Show how many pros, ops and ambassadors Void has",
			Inline: false,
		},
		{
			Name:   "/ops_info",
			Value:  "Show the operations and management team",
			Inline: false,
		},
		{
			Name:   "/random_pro",
			Value:  "Meet a random member of the pro roster",
			Inline: false,
		},
		{
			Name:   "/teams • /team_info",
			Value:  "List Void's teams, or drill into one with `/team_info name:TeamName`",
			Inline: false,
		},
		{
			Name:   "/games",
			Value:  "List the titles Void competes in",
			Inline: false,
		},
	}
}

func websiteHelpFields() []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "🏪 Website Commands:",
			Inline: false,
		},
		{
			Name:   "/merch",
			Value:  "Browse the merch store\n• Use `category:Text` to filter products",
			Inline: false,
		},
		{
			Name:   "/news • /latest",
			Value:  "Browse news articles, or jump straight to the newest one",
			Inline: false,
		},
		{
			Name:   "/placements • /top_placements",
			Value:  "Tournament results, filterable by game",
			Inline: false,
		},
		{
			Name:   "/videos • /latest_video",
			Value:  "Recent long-form videos from the Void YouTube channel",
			Inline: false,
		},
		{
			Name:   "/socials",
			Value:  "All of Void's social links in one place",
			Inline: false,
		},
	}
}

func moderatorHelpFields() []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "🛠️ Moderator Commands:",
			Inline: false,
		},
		{
			Name:   "/kick • /ban • /timeout • /warn • /clear",
			Value:  "Moderation actions with a confirm step\n• Each shows a preview; confirm within 30 seconds to execute",
			Inline: false,
		},
	}
}

func botHelpFields() []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "🤖 Bot Commands:",
			Inline: false,
		},
		{
			Name:   "/ping • /uptime • /stats • /status",
			Value:  "Liveness, uptime, runtime statistics and backend health",
			Inline: false,
		},
	}
}
