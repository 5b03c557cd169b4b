// Package merch serves the merch store browsing command.
package merch

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

	listCommand = "merch"
)

type merchOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultMerchOpts() merchOpts {
	return merchOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// MerchModule implements the CommandModule interface for the merch command
type MerchModule struct {
	deps *types.Dependencies
	opts merchOpts
}

// New creates a new merch module
func New(deps *types.Dependencies) types.CommandModule {
	return &MerchModule{deps: deps, opts: defaultMerchOpts()}
}

// Register adds the merch command to the command map
func (m *MerchModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "Browse the Void merch store",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Filter by category (e.g. apparel, mousepad)",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleMerch,
	}
}

func (m *MerchModule) handleMerch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	var category string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "category" {
			category = opt.StringValue()
		}
	}

	products, ok := m.fetchProducts(s, i)
	if !ok {
		return
	}

	state := pagination.State{Command: listCommand, Filter: category}
	embed, components := renderListPage(products, state)
	if embed == nil {
		content := "🛍️ No products found."
		if category != "" {
			content = "🛍️ No products found for category **" + category + "**."
		}
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *MerchModule) fetchProducts(s *discordgo.Session, i *discordgo.InteractionCreate) ([]records.Record, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	products, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionProducts)
	if err != nil {
		m.deps.Config.Logger.Error("Products fetch failed", "error", err)
		content := "⚠️ The website data is unavailable right now. Please try again shortly."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return nil, false
	}
	sitedata.SortByName(products)
	return products, true
}

// HandleComponent owns the product list's navigation and selection controls.
func (m *MerchModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	products, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionProducts)
	if err != nil {
		m.update(s, i, &discordgo.InteractionResponseData{
			Content:    "⚠️ The website data is unavailable right now. Please try again shortly.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		return true
	}
	sitedata.SortByName(products)

	switch kind {
	case pagination.KindList, pagination.KindBack:
		embed, components := renderListPage(products, state)
		if embed == nil {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "🛍️ No products found.",
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
		product, found := sitedata.FindByName(products, values[0])
		if !found {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "🛍️ That product is no longer listed.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
			return true
		}
		back := pagination.BackRow(state)
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{detailEmbed(product)},
			Components: []discordgo.MessageComponent{*back},
		})
	}

	return true
}

func (m *MerchModule) update(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// filterByCategory keeps products whose category contains the query,
// case-insensitive. Products without a category only show unfiltered.
func filterByCategory(products []records.Record, query string) []records.Record {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	out := make([]records.Record, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Str("category")), needle) {
			out = append(out, p)
		}
	}
	return out
}

func renderListPage(products []records.Record, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	filtered := filterByCategory(products, state.Filter)
	if len(filtered) == 0 {
		return nil, nil
	}

	page, totalPages := pagination.Clamp(state.Page, len(filtered), pageSize)
	state.Page = page
	visible := pagination.PageSlice(filtered, page, pageSize)

	var lines []string
	names := make([]string, 0, len(visible))
	for _, product := range visible {
		name := product.StrOr("name", records.Placeholder)
		names = append(names, name)

		line := "• **" + name + "**"
		if price := formatPrice(product); price != "" {
			line += " · " + price
		}
		lines = append(lines, line)
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("🛍️ Void Merch (page %d/%d)", page+1, totalPages)
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	if sel := pagination.SelectRow(state, names, "View a product"); sel != nil {
		components = append(components, *sel)
	}
	return embed, components
}

func detailEmbed(product records.Record) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🛍️ " + product.StrOr("name", records.Placeholder)
	embed.Description = product.Str("description")
	embed.Thumbnail = utils.ThumbnailIfValid(product.FirstStr("", "image", "imageUrl", "photo"))

	if price := formatPrice(product); price != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Price", Value: price, Inline: true,
		})
	}
	if category := product.Str("category"); category != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Category", Value: category, Inline: true,
		})
	}
	for _, key := range []string{"url", "link", "storeUrl"} {
		if url := product.Link(key); url != "" {
			embed.URL = url
			break
		}
	}
	return embed
}

// formatPrice renders the price field, tolerating both numeric and string
// representations in the store data.
func formatPrice(product records.Record) string {
	if price, ok := product.Float("price"); ok {
		return fmt.Sprintf("$%.2f", price)
	}
	if s := product.Str("price"); s != "" {
		if strings.HasPrefix(s, "$") {
			return s
		}
		return "$" + s
	}
	return ""
}

// Service returns nil as this module has no services requiring initialization
func (m *MerchModule) Service() types.ModuleService {
	return nil
}
