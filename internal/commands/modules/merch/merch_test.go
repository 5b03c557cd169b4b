package merch

import (
	"context"
	"fmt"
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
	products []records.Record
	err      error
}

func (f *fakeSource) FetchCollection(_ context.Context, name string) ([]records.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name == sitedata.CollectionProducts {
		return f.products, nil
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

func newModule(src *fakeSource, cap *capture) *MerchModule {
	site := sitedata.NewService(sitedata.NewCached(src, sitedata.DefaultTTL), nil)
	return &MerchModule{
		deps: &types.Dependencies{Config: config.NewMockConfig(nil), Site: site},
		opts: merchOpts{
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

func productFixture(n int) []records.Record {
	out := make([]records.Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, records.Record{
			"name":  fmt.Sprintf("Item %02d", i),
			"price": float64(10 + i),
			"url":   "https://store.voidesports.org/item",
		})
	}
	return out
}

func slash(opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: "merch", Options: opts},
		},
	}
}

func TestMerchListPaginates(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{products: productFixture(23)}, cap)

	mod.handleMerch(nil, slash())

	require.Len(t, cap.edits, 1)
	embed := (*cap.edits[0].Embeds)[0]
	assert.Contains(t, embed.Title, "page 1/3")
	assert.Contains(t, embed.Description, "Item 01")
	assert.Contains(t, embed.Description, "$11.00")
	assert.NotContains(t, embed.Description, "Item 11")
}

func TestMerchCategoryFilter(t *testing.T) {
	cap := &capture{}
	products := []records.Record{
		{"name": "Pro Hoodie", "price": 59.99, "category": "Apparel"},
		{"name": "Pro Jersey", "price": 49.99, "category": "apparel"},
		{"name": "Desk Mat", "price": 24.99, "category": "mousepad"},
		{"name": "Sticker Pack", "price": 4.99},
	}
	mod := newModule(&fakeSource{products: products}, cap)

	mod.handleMerch(nil, slash(&discordgo.ApplicationCommandInteractionDataOption{
		Name: "category", Type: discordgo.ApplicationCommandOptionString, Value: "apparel",
	}))

	require.Len(t, cap.edits, 1)
	embed := (*cap.edits[0].Embeds)[0]
	assert.Contains(t, embed.Description, "Pro Hoodie")
	assert.Contains(t, embed.Description, "Pro Jersey")
	assert.NotContains(t, embed.Description, "Desk Mat")
	assert.NotContains(t, embed.Description, "Sticker Pack")
}

func TestMerchCategoryNoMatches(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{products: productFixture(3)}, cap)

	mod.handleMerch(nil, slash(&discordgo.ApplicationCommandInteractionDataOption{
		Name: "category", Type: discordgo.ApplicationCommandOptionString, Value: "jewelry",
	}))

	require.Len(t, cap.edits, 1)
	require.NotNil(t, cap.edits[0].Content)
	assert.Contains(t, *cap.edits[0].Content, "No products found for category")
}

func TestMerchComponentSelectDetail(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{products: productFixture(5)}, cap)

	claimed := mod.HandleComponent(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: "sel:merch:0:",
				Values:   []string{"Item 02"},
			},
		},
	})
	require.True(t, claimed)

	require.Len(t, cap.responses, 1)
	embed := cap.responses[0].Data.Embeds[0]
	assert.Equal(t, "🛍️ Item 02", embed.Title)
	assert.Equal(t, "https://store.voidesports.org/item", embed.URL)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "$12.00", embed.Fields[0].Value)
}

func TestMerchBackReturnsToOriginPage(t *testing.T) {
	cap := &capture{}
	mod := newModule(&fakeSource{products: productFixture(23)}, cap)

	claimed := mod.HandleComponent(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: "bak:merch:1:"},
		},
	})
	require.True(t, claimed)

	require.Len(t, cap.responses, 1)
	assert.Contains(t, cap.responses[0].Data.Embeds[0].Title, "page 2/3")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$59.99", formatPrice(records.Record{"price": 59.99}))
	assert.Equal(t, "$20.00", formatPrice(records.Record{"price": 20}))
	assert.Equal(t, "$15", formatPrice(records.Record{"price": "15"}))
	assert.Equal(t, "$9.50", formatPrice(records.Record{"price": "$9.50"}))
	assert.Equal(t, "", formatPrice(records.Record{}))
}
