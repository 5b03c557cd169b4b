// Package teams serves the team list and team detail commands.
package teams

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/pagination"
	"voidbot/internal/records"
	"voidbot/internal/sitedata"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	pageSize     = 10
	fetchTimeout = 10 * time.Second

	listCommand = "teams"

	// maxAchievements caps the achievements list on a team detail embed.
	maxAchievements = 10
)

type teamsOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultTeamsOpts() teamsOpts {
	return teamsOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// TeamsModule implements the CommandModule interface for the team commands
type TeamsModule struct {
	deps *types.Dependencies
	opts teamsOpts
}

// New creates a new teams module
func New(deps *types.Dependencies) types.CommandModule {
	return &TeamsModule{deps: deps, opts: defaultTeamsOpts()}
}

// Register adds the team commands to the command map
func (m *TeamsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "List Void's competitive teams",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Only show teams competing in this game",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleTeams,
	}

	cmds["team_info"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "team_info",
			Description: "Show one team's roster and details",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The team's name",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleTeamInfo,
	}
}

func (m *TeamsModule) fetchTeams(s *discordgo.Session, i *discordgo.InteractionCreate) ([]records.Record, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	teams, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionTeams)
	if err != nil {
		m.deps.Config.Logger.Error("Teams fetch failed", "error", err)
		content := "⚠️ The website data is unavailable right now. Please try again shortly."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return nil, false
	}
	sitedata.SortByName(teams)
	return teams, true
}

func (m *TeamsModule) handleTeams(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	var game string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "game" {
			game = opt.StringValue()
		}
	}

	teams, ok := m.fetchTeams(s, i)
	if !ok {
		return
	}

	state := pagination.State{Command: listCommand, Filter: game}
	embed, components := renderListPage(teams, state)
	if embed == nil {
		content := "🫥 No teams found."
		if game != "" {
			content = "🫥 No teams found for **" + game + "**."
		}
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *TeamsModule) handleTeamInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	var name string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}

	teams, ok := m.fetchTeams(s, i)
	if !ok {
		return
	}

	team, found := sitedata.FindByName(teams, name)
	if !found {
		content := "❌ No team found matching **" + name + "**. Try `/teams` to browse."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{detailEmbed(team)},
	})
}

// HandleComponent owns the team list's navigation and selection controls.
func (m *TeamsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	teams, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionTeams)
	if err != nil {
		m.update(s, i, &discordgo.InteractionResponseData{
			Content:    "⚠️ The website data is unavailable right now. Please try again shortly.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		return true
	}
	sitedata.SortByName(teams)

	switch kind {
	case pagination.KindList, pagination.KindBack:
		embed, components := renderListPage(teams, state)
		if embed == nil {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "🫥 No teams found.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
			return true
		}
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})

	case pagination.KindSelect:
		values := i.MessageComponentData().Values
		if len(values) == 0 {
			return true
		}
		team, found := sitedata.FindByName(teams, values[0])
		if !found {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "🫥 That team no longer exists.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
			return true
		}
		back := pagination.BackRow(state)
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{detailEmbed(team)},
			Components: []discordgo.MessageComponent{*back},
		})
	}

	return true
}

func (m *TeamsModule) update(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

func renderListPage(teams []records.Record, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	filtered := sitedata.FilterByGame(teams, state.Filter)
	if len(filtered) == 0 {
		return nil, nil
	}

	page, totalPages := pagination.Clamp(state.Page, len(filtered), pageSize)
	state.Page = page
	visible := pagination.PageSlice(filtered, page, pageSize)

	var lines []string
	names := make([]string, 0, len(visible))
	for _, team := range visible {
		name := team.StrOr("name", records.Placeholder)
		names = append(names, name)

		line := "• **" + name + "**"
		if game := team.Str("game"); game != "" {
			line += " · " + game
		}
		if players := team.Maps("players"); len(players) > 0 {
			line += fmt.Sprintf(" · %d players", len(players))
		}
		lines = append(lines, line)
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("🏆 Void Teams (page %d/%d)", page+1, totalPages)
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	if sel := pagination.SelectRow(state, names, "View a team"); sel != nil {
		components = append(components, *sel)
	}
	return embed, components
}

func detailEmbed(team records.Record) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🏆 " + team.StrOr("name", records.Placeholder)
	embed.Description = team.FirstStr("", "description", "about")
	embed.Thumbnail = utils.ThumbnailIfValid(team.FirstStr("", "logo", "image"))

	if game := team.Str("game"); game != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Game", Value: game, Inline: true,
		})
	}
	if region := team.Str("region"); region != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Region", Value: region, Inline: true,
		})
	}
	if achievements := team.Strings("achievements"); len(achievements) > 0 {
		if len(achievements) > maxAchievements {
			achievements = achievements[:maxAchievements]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Achievements",
			Value: utils.Truncate(strings.Join(achievements, "\n"), 1024),
		})
	}

	players := team.Maps("players")
	if len(players) > 0 {
		var names []string
		for _, p := range players {
			names = append(names, p.StrOr("name", records.Placeholder))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Roster (%d)", len(players)),
			Value: utils.Truncate(strings.Join(names, ", "), 1024),
		})
	}
	if games := playerGames(players); len(games) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Games", Value: strings.Join(games, ", "), Inline: true,
		})
	}
	return embed
}

// playerGames collects the distinct games the roster plays, first seen first.
func playerGames(players []records.Record) []string {
	seen := make(map[string]bool)
	var games []string
	for _, p := range players {
		game := strings.TrimSpace(p.Str("game"))
		if game == "" || seen[strings.ToLower(game)] {
			continue
		}
		seen[strings.ToLower(game)] = true
		games = append(games, game)
	}
	return games
}

// Service returns nil as this module has no services requiring initialization
func (m *TeamsModule) Service() types.ModuleService {
	return nil
}
