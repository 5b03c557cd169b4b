package pros

import (
	"fmt"
	"strings"

	"voidbot/internal/pagination"
	"voidbot/internal/records"
	"voidbot/internal/sitedata"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

func totalsEmbed(roster sitedata.Roster) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🟣 Void Esports Roster"
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Pros", Value: fmt.Sprintf("%d", len(roster.Pros)), Inline: true},
		{Name: "Operations", Value: fmt.Sprintf("%d", len(roster.Operations)), Inline: true},
		{Name: "Ambassadors", Value: fmt.Sprintf("%d", roster.Ambassadors), Inline: true},
		{Name: "Teams", Value: fmt.Sprintf("%d", len(roster.Teams)), Inline: true},
	}
	return embed
}

// renderListPage builds the embed and component rows for one page of the pro
// list. A nil embed means the filtered list is empty.
func renderListPage(pros []records.Record, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	filtered := sitedata.FilterByGame(pros, state.Filter)
	if len(filtered) == 0 {
		return nil, nil
	}

	page, totalPages := pagination.Clamp(state.Page, len(filtered), pageSize)
	state.Page = page
	visible := pagination.PageSlice(filtered, page, pageSize)

	var lines []string
	names := make([]string, 0, len(visible))
	for _, pro := range visible {
		name := pro.StrOr("name", records.Placeholder)
		names = append(names, name)

		line := "• **" + name + "**"
		if game := pro.Str("game"); game != "" {
			line += " · " + game
		}
		if team := pro.Str("teamName"); team != "" {
			line += " (" + team + ")"
		}
		lines = append(lines, line)
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("🎮 Void Pros (page %d/%d)", page+1, totalPages)
	if state.Filter != "" {
		embed.Title = fmt.Sprintf("🎮 Void Pros: %s (page %d/%d)", state.Filter, page+1, totalPages)
	}
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	if sel := pagination.SelectRow(state, names, "View a pro's profile"); sel != nil {
		components = append(components, *sel)
	}
	return embed, components
}

func detailEmbed(member records.Record) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = member.StrOr("name", records.Placeholder)
	embed.Description = member.FirstStr("", "description", "bio", "about")
	embed.Thumbnail = utils.ThumbnailIfValid(member.FirstStr("", "image", "photo", "avatar"))

	addField := func(name, value string) {
		if value == "" {
			return
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: name, Value: value, Inline: true,
		})
	}

	addField("Role", member.FirstStr("", "role", "title"))
	addField("Game", member.Str("game"))
	addField("Team", member.Str("teamName"))
	addField("Country", member.FirstStr("", "country", "nationality"))
	if achievements := member.Strings("achievements"); len(achievements) > 0 {
		if len(achievements) > maxDetailItems {
			achievements = achievements[:maxDetailItems]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Achievements",
			Value: utils.Truncate(strings.Join(achievements, "\n"), 1024),
		})
	}
	if stats := statLines(member); stats != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Key Stats", Value: stats,
		})
	}
	if socials := socialLinks(member); socials != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Socials", Value: socials,
		})
	}
	return embed
}

// statLines renders the member's stats entries as "label: value" lines.
func statLines(member records.Record) string {
	stats := member.Maps("stats")
	if len(stats) > maxDetailItems {
		stats = stats[:maxDetailItems]
	}

	var lines []string
	for _, stat := range stats {
		value := stat.Str("value")
		if value == "" {
			if f, ok := stat.Float("value"); ok {
				value = fmt.Sprintf("%g", f)
			} else {
				value = records.Placeholder
			}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", stat.StrOr("label", "Stat"), value))
	}
	return utils.Truncate(strings.Join(lines, "\n"), 1024)
}

// socialLinks formats a member's socials map into markdown links, keeping a
// stable platform order.
func socialLinks(member records.Record) string {
	socials := member.Map("socials")
	if socials == nil {
		return ""
	}

	var parts []string
	for _, platform := range []string{"twitter", "twitch", "youtube", "instagram", "tiktok"} {
		if url := socials.Link(platform); url != "" {
			parts = append(parts, fmt.Sprintf("[%s](%s)", titleCase(platform), url))
		}
	}
	return strings.Join(parts, " · ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func opsEmbed(ops []records.Record) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🧭 Void Operations Team"

	if len(ops) == 0 {
		embed.Description = "No operations staff listed right now."
		return embed
	}

	for _, member := range ops {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   member.StrOr("name", records.Placeholder),
			Value:  member.FirstStr(records.Placeholder, "role", "title"),
			Inline: true,
		})
	}
	return embed
}
