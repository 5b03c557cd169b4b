package socials

import (
	"testing"

	"voidbot/internal/commands/types"
	"voidbot/internal/config"
	"voidbot/internal/pagination"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	responses []*discordgo.InteractionResponse
}

func newModule() (*SocialsModule, *capture) {
	c := &capture{}
	m := &SocialsModule{
		deps: &types.Dependencies{Config: config.NewMockConfig(nil)},
		opts: socialsOpts{
			Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
				c.responses = append(c.responses, resp)
				return nil
			},
		},
	}
	return m, c
}

func componentInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: customID},
		},
	}
}

func TestSocialsFirstPage(t *testing.T) {
	m, c := newModule()

	m.handleSocials(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: "socials"},
		},
	})

	require.Len(t, c.responses, 1)
	data := c.responses[0].Data
	require.Len(t, data.Embeds, 1)

	embed := data.Embeds[0]
	assert.Equal(t, "🌐 Void Esports Social Links", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "💬 Discord", embed.Fields[0].Name)
	assert.Equal(t, "Page 1/2 • 5 platforms", embed.Footer.Text)

	// Link buttons for the visible platforms plus a nav row.
	require.Len(t, data.Components, 2)
	links := data.Components[0].(discordgo.ActionsRow)
	require.Len(t, links.Components, 3)
	first := links.Components[0].(discordgo.Button)
	assert.Equal(t, discordgo.LinkButton, first.Style)
	assert.NotEmpty(t, first.URL)
	assert.Empty(t, first.CustomID)
}

func TestSocialsSecondPage(t *testing.T) {
	m, c := newModule()

	claimed := m.HandleComponent(nil, componentInteraction("pag:socials:1:"))
	require.True(t, claimed)

	require.Len(t, c.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, c.responses[0].Type)

	embed := c.responses[0].Data.Embeds[0]
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "📸 Instagram", embed.Fields[0].Name)
	assert.Equal(t, "🎵 TikTok", embed.Fields[1].Name)
}

func TestSocialsClampsOutOfRangePage(t *testing.T) {
	m, c := newModule()

	require.True(t, m.HandleComponent(nil, componentInteraction("pag:socials:9:")))

	embed := c.responses[0].Data.Embeds[0]
	assert.Equal(t, "Page 2/2 • 5 platforms", embed.Footer.Text)
}

func TestSocialsIgnoresOtherTokens(t *testing.T) {
	m, c := newModule()

	assert.False(t, m.HandleComponent(nil, componentInteraction("pag:news:0:")))
	assert.False(t, m.HandleComponent(nil, componentInteraction("confirm:ban:1:2")))
	assert.Empty(t, c.responses)
}

func TestRenderPageLeavesStandardFooterAlone(t *testing.T) {
	_, _ = renderPage(pagination.State{Command: listCommand, Page: 1})

	assert.NotContains(t, utils.NewEmbed().Footer.Text, "Page")
}
