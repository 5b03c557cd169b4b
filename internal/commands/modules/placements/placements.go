// Package placements serves the tournament results commands.
package placements

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
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

	listCommand = "placements"

	// topCutoff is the worst finish still counted as a podium result.
	topCutoff = 3

	maxLimit = 10
)

var minLimit = 1.0

type placementsOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultPlacementsOpts() placementsOpts {
	return placementsOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// PlacementsModule implements the CommandModule interface for the results commands
type PlacementsModule struct {
	deps *types.Dependencies
	opts placementsOpts
}

// New creates a new placements module
func New(deps *types.Dependencies) types.CommandModule {
	return &PlacementsModule{deps: deps, opts: defaultPlacementsOpts()}
}

// Register adds the results commands to the command map
func (m *PlacementsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	gameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "game",
		Description: "Only show results for this game",
		Required:    false,
	}
	limitOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "limit",
		Description: "How many results to show (1-10)",
		MinValue:    &minLimit,
		MaxValue:    maxLimit,
	}

	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "Browse Void's tournament results",
			Options:     []*discordgo.ApplicationCommandOption{limitOption, gameOption},
		},
		HandlerFunc: m.handlePlacements,
	}

	cmds["top_placements"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "top_placements",
			Description: "Show Void's podium finishes",
			Options:     []*discordgo.ApplicationCommandOption{gameOption},
		},
		HandlerFunc: m.handleTopPlacements,
	}
}

func gameOptionValue(i *discordgo.InteractionCreate) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "game" {
			return opt.StringValue()
		}
	}
	return ""
}

func limitOptionValue(i *discordgo.InteractionCreate) int {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "limit" {
			limit := int(opt.IntValue())
			if limit > maxLimit {
				limit = maxLimit
			}
			return limit
		}
	}
	return 0
}

func (m *PlacementsModule) fetch(s *discordgo.Session, i *discordgo.InteractionCreate) ([]records.Record, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	results, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionPlacements)
	if err != nil {
		m.deps.Config.Logger.Error("Placements fetch failed", "error", err)
		content := "⚠️ The website data is unavailable right now. Please try again shortly."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return nil, false
	}
	SortByDate(results)
	return results, true
}

func (m *PlacementsModule) handlePlacements(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	game := gameOptionValue(i)

	results, ok := m.fetch(s, i)
	if !ok {
		return
	}
	if limit := limitOptionValue(i); limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	state := pagination.State{Command: listCommand, Filter: game}
	embed, components := renderListPage(results, state)
	if embed == nil {
		content := "🏅 No results recorded yet."
		if game != "" {
			content = "🏅 No results recorded for **" + game + "**."
		}
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *PlacementsModule) handleTopPlacements(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	game := gameOptionValue(i)

	results, ok := m.fetch(s, i)
	if !ok {
		return
	}

	if game != "" {
		results = sitedata.FilterByGameStrict(results, game)
	}
	top := TopFinishes(results, topCutoff)
	if len(top) == 0 {
		content := "🏅 No podium finishes yet. We're working on it."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}
	if len(top) > pageSize {
		top = top[:pageSize]
	}

	embed := utils.NewEmbed()
	embed.Title = "🏅 Void Podium Finishes"
	if game != "" {
		embed.Title += ": " + game
	}
	embed.Description = strings.Join(resultLines(top), "\n")

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// HandleComponent owns the results list's navigation buttons.
func (m *PlacementsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand || kind == pagination.KindSelect {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	results, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionPlacements)
	if err != nil {
		_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "⚠️ The website data is unavailable right now. Please try again shortly.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			},
		})
		return true
	}
	SortByDate(results)

	embed, components := renderListPage(results, state)
	if embed == nil {
		_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "🏅 No results recorded yet.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			},
		})
		return true
	}

	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	return true
}

// SortByDate orders results newest first; undated results go last.
func SortByDate(results []records.Record) {
	sort.SliceStable(results, func(i, j int) bool {
		ti, iOK := resultTime(results[i])
		tj, jOK := resultTime(results[j])
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

func resultTime(result records.Record) (time.Time, bool) {
	for _, key := range []string{"date", "createdAt", "endDate"} {
		if t, ok := result.Time(key); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

var firstNumber = regexp.MustCompile(`\d+`)

// ParsePosition extracts the numeric finish from a placement value, which the
// website stores inconsistently ("1st", "3rd-4th", 2, "Top 8"). Zero means
// no numeric finish could be read.
func ParsePosition(result records.Record) int {
	if pos, ok := result.Float("placement"); ok {
		return int(pos)
	}
	s := result.FirstStr("", "placement", "position", "result")
	if match := firstNumber.FindString(s); match != "" {
		n, _ := strconv.Atoi(match)
		return n
	}
	return 0
}

// TopFinishes keeps results at or above the cutoff, best finish first and
// newest first within the same finish.
func TopFinishes(results []records.Record, cutoff int) []records.Record {
	var top []records.Record
	for _, r := range results {
		if pos := ParsePosition(r); pos > 0 && pos <= cutoff {
			top = append(top, r)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return ParsePosition(top[i]) < ParsePosition(top[j])
	})
	return top
}

func medal(pos int) string {
	switch pos {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}

func resultLines(results []records.Record) []string {
	var lines []string
	for _, r := range results {
		pos := ParsePosition(r)
		placement := r.FirstStr(records.Placeholder, "placement", "position", "result")
		event := r.FirstStr(records.Placeholder, "event", "tournament", "name")

		line := fmt.Sprintf("%s **%s** · %s", medal(pos), placement, event)
		if game := r.Str("game"); game != "" {
			line += " (" + game + ")"
		}
		if prize := r.Str("prize"); prize != "" {
			line += " · " + prize
		}
		lines = append(lines, line)
	}
	return lines
}

func renderListPage(results []records.Record, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	filtered := sitedata.FilterByGame(results, state.Filter)
	if len(filtered) == 0 {
		return nil, nil
	}

	page, totalPages := pagination.Clamp(state.Page, len(filtered), pageSize)
	state.Page = page
	visible := pagination.PageSlice(filtered, page, pageSize)

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("🏅 Void Results (page %d/%d)", page+1, totalPages)
	if state.Filter != "" {
		embed.Title = fmt.Sprintf("🏅 Void Results: %s (page %d/%d)", state.Filter, page+1, totalPages)
	}
	embed.Description = strings.Join(resultLines(visible), "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	return embed, components
}

// Service returns nil as this module has no services requiring initialization
func (m *PlacementsModule) Service() types.ModuleService {
	return nil
}
