package teams

import (
	"context"
	"testing"

	"voidbot/internal/commands/types"
	"voidbot/internal/config"
	"voidbot/internal/records"
	"voidbot/internal/sitedata"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	teams []records.Record
	err   error
}

func (f *fakeSource) FetchCollection(_ context.Context, name string) ([]records.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name == sitedata.CollectionTeams {
		return f.teams, nil
	}
	return nil, nil
}

func (f *fakeSource) FetchRecent(ctx context.Context, name, _ string, _ int) ([]records.Record, error) {
	return f.FetchCollection(ctx, name)
}

func (f *fakeSource) Close() error { return nil }

type capture struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func newModule(src *fakeSource, cap *capture) *TeamsModule {
	site := sitedata.NewService(sitedata.NewCached(src, sitedata.DefaultTTL), nil)
	return &TeamsModule{
		deps: &types.Dependencies{Config: config.NewMockConfig(nil), Site: site},
		opts: teamsOpts{
			Respond: func(_ *discordgo.Session, _ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
				cap.responses = append(cap.responses, resp)
				return nil
			},
			EditResponse: func(_ *discordgo.Session, _ *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
				cap.edits = append(cap.edits, edit)
				return nil
			},
		},
	}
}

func teamFixture() []records.Record {
	return []records.Record{
		{"name": "Void Alpha", "game": "Rocket League", "region": "EU", "players": []any{
			map[string]any{"name": "P1"}, map[string]any{"name": "P2"}, map[string]any{"name": "P3"},
		}},
		{"name": "Void Beta", "game": "Valorant", "players": []any{
			map[string]any{"name": "V1"},
		}},
	}
}

func slash(command string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: command, Options: opts},
		},
	}
}

func TestTeamsList(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{teams: teamFixture()}, cap)

	mod.handleTeams(nil, slash("teams"))

	require.Len(t, cap.edits, 1)
	embed := (*cap.edits[0].Embeds)[0]
	assert.Contains(t, embed.Title, "page 1/1")
	assert.Contains(t, embed.Description, "Void Alpha")
	assert.Contains(t, embed.Description, "3 players")

	// One page: select menu only, no nav buttons.
	components := *cap.edits[0].Components
	require.Len(t, components, 1)
	sel := components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Len(t, sel.Options, 2)
}

func TestTeamInfoDetail(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{teams: teamFixture()}, cap)

	mod.handleTeamInfo(nil, slash("team_info", &discordgo.ApplicationCommandInteractionDataOption{
		Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "alpha",
	}))

	require.Len(t, cap.edits, 1)
	embed := (*cap.edits[0].Embeds)[0]
	assert.Equal(t, "🏆 Void Alpha", embed.Title)

	var rosterField *discordgo.MessageEmbedField
	for _, f := range embed.Fields {
		if f.Name == "Roster (3)" {
			rosterField = f
		}
	}
	require.NotNil(t, rosterField)
	assert.Equal(t, "P1, P2, P3", rosterField.Value)
}

func TestTeamDetailShowsAchievementsAndGames(t *testing.T) {
	team := records.Record{
		"name":         "Void Alpha",
		"achievements": []any{"Spring Open champions", "Summer Clash finalists"},
		"players": []any{
			map[string]any{"name": "P1", "game": "Rocket League"},
			map[string]any{"name": "P2", "game": "rocket league"},
			map[string]any{"name": "P3", "game": "Valorant"},
		},
	}

	embed := detailEmbed(team)

	fields := make(map[string]string)
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	require.Contains(t, fields, "Achievements")
	assert.Equal(t, "Spring Open champions\nSummer Clash finalists", fields["Achievements"])
	require.Contains(t, fields, "Games")
	assert.Equal(t, "Rocket League, Valorant", fields["Games"])
}

func TestTeamInfoNotFound(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{teams: teamFixture()}, cap)

	mod.handleTeamInfo(nil, slash("team_info", &discordgo.ApplicationCommandInteractionDataOption{
		Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "Gamma",
	}))

	require.Len(t, cap.edits, 1)
	require.NotNil(t, cap.edits[0].Content)
	assert.Contains(t, *cap.edits[0].Content, "No team found")
}

func TestTeamsComponentSelect(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{teams: teamFixture()}, cap)

	claimed := mod.HandleComponent(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: "sel:teams:0:",
				Values:   []string{"Void Beta"},
			},
		},
	})
	require.True(t, claimed)

	require.Len(t, cap.responses, 1)
	resp := cap.responses[0]
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	assert.Equal(t, "🏆 Void Beta", resp.Data.Embeds[0].Title)
}

func TestTeamsComponentIgnoresOthers(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{teams: teamFixture()}, cap)

	claimed := mod.HandleComponent(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: "pag:pros_list:0:"},
		},
	})
	assert.False(t, claimed)
	assert.Empty(t, cap.responses)
}

func TestTeamsFetchFailure(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{err: assert.AnError}, cap)

	mod.handleTeams(nil, slash("teams"))

	require.Len(t, cap.edits, 1)
	require.NotNil(t, cap.edits[0].Content)
	assert.Contains(t, *cap.edits[0].Content, "unavailable")
}
