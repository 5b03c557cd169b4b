package help

import (
	"voidbot/internal/commands/types"

	"github.com/bwmarrin/discordgo"
)

// HelpModule implements the CommandModule interface for the help command
type HelpModule struct{}

// New creates a new help module
func New(deps *types.Dependencies) types.CommandModule {
	return &HelpModule{}
}

// Register adds the help command to the command map
func (m *HelpModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["help"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Show all available commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Only show one command category",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Pros & Teams", Value: "pros"},
						{Name: "Merch & News", Value: "content"},
						{Name: "Utility & Moderation", Value: "utility"},
					},
				},
			},
		},
		HandlerFunc: m.handleHelp,
	}
}

// handleHelp handles the help slash command
func (m *HelpModule) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var category string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "category" {
			category = opt.StringValue()
		}
	}
	embed := helpCommandsEmbed(category)

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// Service returns nil as this module has no services requiring initialization
func (m *HelpModule) Service() types.ModuleService {
	return nil
}
