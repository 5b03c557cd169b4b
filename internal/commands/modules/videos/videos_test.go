package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/config"
	"voidbot/internal/youtube"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func testOpts(c *capture, fetch func(ctx context.Context, limit int) ([]youtube.Video, error)) videosOpts {
	return videosOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			c.responses = append(c.responses, resp)
			return nil
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			c.edits = append(c.edits, edit)
			return nil
		},
		FetchRecent: fetch,
	}
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}

func fixtureVideos() []youtube.Video {
	return []youtube.Video{
		{
			ID:          "vid1",
			Title:       "Grand Finals Recap",
			Description: "We went all the way.",
			Duration:    22*time.Minute + 5*time.Second,
			Views:       120500,
			PublishedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:       "vid2",
			Title:    "Roster Announcement",
			Duration: 6 * time.Minute,
			Views:    4300,
		},
		{
			ID:       "short1",
			Title:    "Clip of the Week",
			Duration: 45 * time.Second,
			Views:    9000,
		},
	}
}

func newModule(fetch func(ctx context.Context, limit int) ([]youtube.Video, error)) (*VideosModule, *capture) {
	c := &capture{}
	deps := &types.Dependencies{Config: config.NewMockConfig(nil)}
	m := &VideosModule{deps: deps, opts: testOpts(c, fetch)}
	return m, c
}

func TestVideosListsLongFormOnly(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	m.handleVideos(nil, commandInteraction("videos"))

	require.Len(t, c.edits, 1)
	require.NotNil(t, c.edits[0].Embeds)
	embed := (*c.edits[0].Embeds)[0]
	assert.Contains(t, embed.Title, "📺 Latest Void Videos")
	assert.Contains(t, embed.Description, "Grand Finals Recap")
	assert.Contains(t, embed.Description, "22:05")
	assert.Contains(t, embed.Description, "120.5K views")
	assert.Contains(t, embed.Description, "https://www.youtube.com/watch?v=vid1")
	assert.NotContains(t, embed.Description, "Clip of the Week")
}

func TestVideosLongformFalseShowsEverything(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	i := commandInteraction("videos")
	data := i.Data.(discordgo.ApplicationCommandInteractionData)
	data.Options = []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "longform", Type: discordgo.ApplicationCommandOptionBoolean, Value: false},
	}
	i.Data = data

	m.handleVideos(nil, i)

	require.Len(t, c.edits, 1)
	embed := (*c.edits[0].Embeds)[0]
	assert.Contains(t, embed.Description, "Clip of the Week")
}

func TestVideosLimitCapsList(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	i := commandInteraction("videos")
	data := i.Data.(discordgo.ApplicationCommandInteractionData)
	data.Options = []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "limit", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(1)},
	}
	i.Data = data

	m.handleVideos(nil, i)

	require.Len(t, c.edits, 1)
	embed := (*c.edits[0].Embeds)[0]
	assert.Contains(t, embed.Description, "Grand Finals Recap")
	assert.NotContains(t, embed.Description, "Roster Announcement")
}

func TestLatestVideoShowsDetail(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	m.handleLatestVideo(nil, commandInteraction("latest_video"))

	require.Len(t, c.edits, 1)
	embed := (*c.edits[0].Embeds)[0]
	assert.Equal(t, "📺 Grand Finals Recap", embed.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", embed.URL)

	var published string
	for _, f := range embed.Fields {
		if f.Name == "Published" {
			published = f.Value
		}
	}
	assert.True(t, strings.HasPrefix(published, "<t:"))
}

func TestVideosNotConfigured(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return nil, youtube.ErrNotConfigured
	})

	m.handleVideos(nil, commandInteraction("videos"))

	require.Len(t, c.edits, 1)
	require.NotNil(t, c.edits[0].Content)
	assert.Contains(t, *c.edits[0].Content, "not configured")
}

func TestVideosFetchFailure(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return nil, errors.New("quota exceeded")
	})

	m.handleVideos(nil, commandInteraction("videos"))

	require.Len(t, c.edits, 1)
	require.NotNil(t, c.edits[0].Content)
	assert.Contains(t, *c.edits[0].Content, "unavailable")
}

func TestVideosEmptyChannel(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return nil, nil
	})

	m.handleVideos(nil, commandInteraction("videos"))

	require.Len(t, c.edits, 1)
	require.NotNil(t, c.edits[0].Content)
	assert.Contains(t, *c.edits[0].Content, "No videos")
}

func TestDetailEmbedOmitsZeroPublishDate(t *testing.T) {
	embed := detailEmbed(fixtureVideos()[1])
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Published", f.Name)
	}
}

func componentInteraction(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
		},
	}
}

func manyVideos(n int) []youtube.Video {
	videos := make([]youtube.Video, 0, n)
	for idx := 0; idx < n; idx++ {
		videos = append(videos, youtube.Video{
			ID:       fmt.Sprintf("vid%02d", idx),
			Title:    fmt.Sprintf("Match VOD %02d", idx),
			Duration: 10 * time.Minute,
			Views:    1000,
		})
	}
	return videos
}

func TestVideosListPaginates(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return manyVideos(12), nil
	})

	m.handleVideos(nil, commandInteraction("videos"))

	require.Len(t, c.edits, 1)
	require.NotNil(t, c.edits[0].Embeds)
	embed := (*c.edits[0].Embeds)[0]
	assert.Contains(t, embed.Title, "(page 1/3)")
	assert.Contains(t, embed.Description, "Match VOD 00")
	assert.NotContains(t, embed.Description, "Match VOD 05")

	require.NotNil(t, c.edits[0].Components)
	components := *c.edits[0].Components
	require.Len(t, components, 2)
	nav := components[0].(discordgo.ActionsRow)
	next := nav.Components[1].(discordgo.Button)
	assert.Equal(t, "pag:videos:1:15", next.CustomID)
	sel := components[1].(discordgo.ActionsRow)
	menu := sel.Components[0].(discordgo.SelectMenu)
	assert.Len(t, menu.Options, 5)
}

func TestVideosPageNavigation(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return manyVideos(12), nil
	})

	handled := m.HandleComponent(nil, componentInteraction("pag:videos:1:15"))

	require.True(t, handled)
	require.Len(t, c.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, c.responses[0].Type)
	embed := c.responses[0].Data.Embeds[0]
	assert.Contains(t, embed.Title, "(page 2/3)")
	assert.Contains(t, embed.Description, "Match VOD 05")
	assert.NotContains(t, embed.Description, "Match VOD 00")
}

func TestVideosComponentKeepsAllFilter(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	handled := m.HandleComponent(nil, componentInteraction("pag:videos:0:3_all"))

	require.True(t, handled)
	require.Len(t, c.responses, 1)
	embed := c.responses[0].Data.Embeds[0]
	assert.Contains(t, embed.Description, "Clip of the Week")
}

func TestVideoSelectShowsDetailWithBack(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	handled := m.HandleComponent(nil, componentInteraction("sel:videos:0:15", "Grand Finals Recap"))

	require.True(t, handled)
	require.Len(t, c.responses, 1)
	embed := c.responses[0].Data.Embeds[0]
	assert.Equal(t, "📺 Grand Finals Recap", embed.Title)

	components := c.responses[0].Data.Components
	require.Len(t, components, 1)
	back := components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, "bak:videos:0:15", back.CustomID)
}

func TestVideosIgnoresOtherListTokens(t *testing.T) {
	m, c := newModule(func(ctx context.Context, limit int) ([]youtube.Video, error) {
		return fixtureVideos(), nil
	})

	handled := m.HandleComponent(nil, componentInteraction("pag:news:0:"))

	assert.False(t, handled)
	assert.Empty(t, c.responses)
}
