// Package games lists the titles the org currently competes in.
package games

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/records"
	"voidbot/internal/sitedata"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const fetchTimeout = 10 * time.Second

type gamesOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

// GamesModule implements the CommandModule interface for the games command
type GamesModule struct {
	deps *types.Dependencies
	opts gamesOpts
}

// New creates a new games module
func New(deps *types.Dependencies) types.CommandModule {
	m := &GamesModule{deps: deps}
	m.opts = gamesOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
	return m
}

// Register adds the games command to the command map
func (m *GamesModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["games"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "games",
			Description: "List all games that have Void pros or placements",
		},
		HandlerFunc: m.handleGames,
	}
}

func (m *GamesModule) handleGames(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	src := m.deps.Site.Source()
	collected := make(map[string][]records.Record)
	for _, name := range []string{sitedata.CollectionTeams, sitedata.CollectionPlacements, sitedata.CollectionAmbassadors} {
		list, err := src.FetchCollection(ctx, name)
		if err != nil {
			m.deps.Config.Logger.Error("Games fetch failed", "collection", name, "error", err)
			content := "⚠️ The website data is unavailable right now. Please try again shortly."
			_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
			return
		}
		collected[name] = list
	}

	games := DistinctGames(
		collected[sitedata.CollectionTeams],
		collected[sitedata.CollectionPlacements],
		collected[sitedata.CollectionAmbassadors],
	)
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{gamesEmbed(games)},
	})
}

// DistinctGames collects every game title mentioned by a team player, a
// placement or an ambassador. Titles are deduplicated case-insensitively,
// keeping the first casing seen, and sorted.
func DistinctGames(teams, placements, ambassadors []records.Record) []string {
	seen := make(map[string]string)

	add := func(game string) {
		game = strings.TrimSpace(game)
		if game == "" {
			return
		}
		key := strings.ToLower(game)
		if _, ok := seen[key]; !ok {
			seen[key] = game
		}
	}

	for _, team := range teams {
		for _, player := range team.Maps("players") {
			if g, ok := player["game"].(string); ok {
				add(g)
			}
		}
	}
	for _, p := range placements {
		add(p.Str("game"))
	}
	for _, a := range ambassadors {
		add(a.Str("game"))
	}

	games := make([]string, 0, len(seen))
	for _, g := range seen {
		games = append(games, g)
	}
	sort.Slice(games, func(a, b int) bool {
		return strings.ToLower(games[a]) < strings.ToLower(games[b])
	})
	return games
}

func gamesEmbed(games []string) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🎮 Void Games"

	if len(games) == 0 {
		embed.Description = "No games found."
		return embed
	}

	var lines []string
	for _, g := range games {
		lines = append(lines, fmt.Sprintf("• **%s**", g))
	}
	embed.Description = strings.Join(lines, "\n")
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d game(s)", len(games)),
	}
	return embed
}

// Service returns nil as this module has no services requiring initialization
func (m *GamesModule) Service() types.ModuleService {
	return nil
}
