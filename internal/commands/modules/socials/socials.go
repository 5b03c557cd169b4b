// Package socials serves the org social link directory.
package socials

import (
	"fmt"

	"voidbot/internal/commands/types"
	"voidbot/internal/pagination"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	pageSize    = 3
	listCommand = "socials"
)

// Platform is one official Void social channel.
type Platform struct {
	Name        string
	Emoji       string
	URL         string
	Handle      string
	Description string
}

// platforms is the verified link list, Discord first.
var platforms = []Platform{
	{
		Name:        "Discord",
		Emoji:       "💬",
		URL:         "https://discord.gg/void-esports-lf-investors-1197180527686463498",
		Description: "Join our community! Chat with fans, players, and investors",
	},
	{
		Name:        "YouTube",
		Emoji:       "🎥",
		URL:         "https://youtube.com/@voidesports2x",
		Handle:      "@voidesports2x",
		Description: "Highlights, vlogs, and tournament recaps",
	},
	{
		Name:        "Twitter / X",
		Emoji:       "🐦",
		URL:         "https://x.com/voidesports2x",
		Handle:      "@voidesports2x",
		Description: "Latest news, updates, and community engagement",
	},
	{
		Name:        "Instagram",
		Emoji:       "📸",
		URL:         "https://www.instagram.com/voidesports2x",
		Handle:      "@voidesports2x",
		Description: "Behind the scenes, photos, and lifestyle content",
	},
	{
		Name:        "TikTok",
		Emoji:       "🎵",
		URL:         "https://www.tiktok.com/@voidesportsggs",
		Handle:      "@voidesportsggs",
		Description: "Short clips, memes, and viral content",
	},
}

type socialsOpts struct {
	Respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

// SocialsModule implements the CommandModule interface for the socials command
type SocialsModule struct {
	deps *types.Dependencies
	opts socialsOpts
}

// New creates a new socials module
func New(deps *types.Dependencies) types.CommandModule {
	m := &SocialsModule{deps: deps}
	m.opts = socialsOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
	return m
}

// Register adds the socials command to the command map
func (m *SocialsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["socials"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "socials",
			Description: "List all official Void Esports social media links",
		},
		HandlerFunc: m.handleSocials,
	}
}

func (m *SocialsModule) handleSocials(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed, components := renderPage(pagination.State{Command: listCommand})
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// HandleComponent pages through the platform list.
func (m *SocialsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}
	if kind == pagination.KindSelect {
		return false
	}

	embed, components := renderPage(state)
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	return true
}

func renderPage(state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	page, totalPages := pagination.Clamp(state.Page, len(platforms), pageSize)
	state.Page = page
	visible := pagination.PageSlice(platforms, page, pageSize)

	embed := utils.NewEmbed()
	embed.Title = "🌐 Void Esports Social Links"
	embed.Description = "Connect with us across all platforms. All links are managed by Void staff."
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Page %d/%d • %d platforms", page+1, totalPages, len(platforms)),
	}

	for _, p := range visible {
		value := p.Description
		if p.Handle != "" {
			value += fmt.Sprintf("\n🔖 %s", p.Handle)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", p.Emoji, p.Name),
			Value: value,
		})
	}

	components := []discordgo.MessageComponent{linkRow(visible)}
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	return embed, components
}

func linkRow(visible []Platform) discordgo.ActionsRow {
	var buttons []discordgo.MessageComponent
	for _, p := range visible {
		buttons = append(buttons, discordgo.Button{
			Label: p.Name,
			Emoji: &discordgo.ComponentEmoji{Name: p.Emoji},
			Style: discordgo.LinkButton,
			URL:   p.URL,
		})
	}
	return discordgo.ActionsRow{Components: buttons}
}

// Service returns nil as this module has no services requiring initialization
func (m *SocialsModule) Service() types.ModuleService {
	return nil
}
