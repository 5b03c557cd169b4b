// Package pros serves the roster commands: totals, the paginated pro list,
// individual profiles, the operations team and a random roster pick.
package pros

import (
	"context"
	"math/rand"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/pagination"
	"voidbot/internal/sitedata"

	"github.com/bwmarrin/discordgo"
)

const (
	pageSize     = 10
	fetchTimeout = 10 * time.Second

	listCommand = "pros_list"

	// maxDetailItems caps achievements and stats lines on a detail embed.
	maxDetailItems = 10
)

type prosOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultProsOpts() prosOpts {
	return prosOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// ProsModule implements the CommandModule interface for the roster commands
type ProsModule struct {
	deps    *types.Dependencies
	opts    prosOpts
	rand    *rand.Rand
	service *Service
}

// New creates a new pros module
func New(deps *types.Dependencies) types.CommandModule {
	return &ProsModule{
		deps: deps,
		opts: defaultProsOpts(),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Register adds the roster commands to the command map
func (m *ProsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	gameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "game",
		Description: "Only show pros competing in this game",
		Required:    false,
	}

	cmds["pros_total"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "pros_total",
			Description: "Show how many pros, ops and ambassadors Void has",
		},
		HandlerFunc: m.handleProsTotal,
	}

	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "Browse the pro roster",
			Options:     []*discordgo.ApplicationCommandOption{gameOption},
		},
		HandlerFunc: m.handleProsList,
	}

	cmds["pro_info"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "pro_info",
			Description: "Look up one pro's full profile",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The pro's name",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleProInfo,
	}

	cmds["ops_info"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "ops_info",
			Description: "Show the operations and management team",
		},
		HandlerFunc: m.handleOpsInfo,
	}

	cmds["random_pro"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "random_pro",
			Description: "Meet a random member of the pro roster",
		},
		HandlerFunc: m.handleRandomPro,
	}
}

func (m *ProsModule) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (m *ProsModule) editError(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}

func (m *ProsModule) roster(s *discordgo.Session, i *discordgo.InteractionCreate) (sitedata.Roster, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	roster, err := m.deps.Site.Roster(ctx)
	if err != nil {
		m.deps.Config.Logger.Error("Roster fetch failed", "error", err)
		m.editError(s, i, "⚠️ The website data is unavailable right now. Please try again shortly.")
		return sitedata.Roster{}, false
	}
	return roster, true
}

func (m *ProsModule) handleProsTotal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferResponse(s, i)

	roster, ok := m.roster(s, i)
	if !ok {
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{totalsEmbed(roster)},
	})
}

func (m *ProsModule) handleProsList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferResponse(s, i)

	var game string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "game" {
			game = opt.StringValue()
		}
	}

	roster, ok := m.roster(s, i)
	if !ok {
		return
	}

	state := pagination.State{Command: listCommand, Page: 0, Filter: game}
	embed, components := renderListPage(roster.Pros, state)
	if embed == nil {
		m.editError(s, i, noProsMessage(game))
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *ProsModule) handleProInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferResponse(s, i)

	var name string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}
	if name == "" {
		m.editError(s, i, "❌ No name specified.")
		return
	}

	roster, ok := m.roster(s, i)
	if !ok {
		return
	}

	member, found := sitedata.FindByName(roster.All(), name)
	if !found {
		m.editError(s, i, "❌ No roster member found matching **"+name+"**. Try `/pros_list` to browse.")
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{detailEmbed(member)},
	})
}

func (m *ProsModule) handleOpsInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferResponse(s, i)

	roster, ok := m.roster(s, i)
	if !ok {
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{opsEmbed(roster.Operations)},
	})
}

func (m *ProsModule) handleRandomPro(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferResponse(s, i)

	roster, ok := m.roster(s, i)
	if !ok {
		return
	}

	if len(roster.Pros) == 0 {
		m.editError(s, i, "🫥 The roster is empty right now.")
		return
	}

	pick := roster.Pros[m.rand.Intn(len(roster.Pros))]
	embed := detailEmbed(pick)
	embed.Title = "🎲 " + embed.Title

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

func noProsMessage(game string) string {
	if game != "" {
		return "🫥 No pros found for **" + game + "**."
	}
	return "🫥 The roster is empty right now."
}

// Service returns the roster warm service so the scheduler picks up its job.
func (m *ProsModule) Service() types.ModuleService {
	if m.service == nil {
		m.service = &Service{deps: m.deps}
	}
	return m.service
}
