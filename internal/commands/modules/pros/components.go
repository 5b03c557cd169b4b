package pros

import (
	"context"

	"voidbot/internal/pagination"
	"voidbot/internal/sitedata"

	"github.com/bwmarrin/discordgo"
)

// HandleComponent owns the pro list's navigation buttons, select menu and
// the detail view's back button.
func (m *ProsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	roster, err := m.deps.Site.Roster(ctx)
	if err != nil {
		m.deps.Config.Logger.Error("Roster fetch failed on component", "error", err)
		m.updateContent(s, i, "⚠️ The website data is unavailable right now. Please try again shortly.")
		return true
	}

	switch kind {
	case pagination.KindList, pagination.KindBack:
		embed, components := renderListPage(roster.Pros, state)
		if embed == nil {
			m.updateContent(s, i, noProsMessage(state.Filter))
			return true
		}
		m.updateMessage(s, i, embed, components)

	case pagination.KindSelect:
		values := i.MessageComponentData().Values
		if len(values) == 0 {
			return true
		}
		member, found := sitedata.FindByName(roster.Pros, values[0])
		if !found {
			// The roster changed under the open menu.
			m.updateContent(s, i, "🫥 That pro is no longer on the roster.")
			return true
		}
		back := pagination.BackRow(state)
		m.updateMessage(s, i, detailEmbed(member), []discordgo.MessageComponent{*back})
	}

	return true
}

func (m *ProsModule) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

func (m *ProsModule) updateContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}
