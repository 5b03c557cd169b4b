// Package news serves the news article commands.
package news

import (
	"context"
	"fmt"
	"sort"
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

	listCommand = "news"

	maxLimit = 10
)

var minLimit = 1.0

type newsOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultNewsOpts() newsOpts {
	return newsOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// NewsModule implements the CommandModule interface for the news commands
type NewsModule struct {
	deps *types.Dependencies
	opts newsOpts
}

// New creates a new news module
func New(deps *types.Dependencies) types.CommandModule {
	return &NewsModule{deps: deps, opts: defaultNewsOpts()}
}

// Register adds the news commands to the command map
func (m *NewsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "Browse Void news articles, newest first",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "How many articles to show (1-10)",
					MinValue:    &minLimit,
					MaxValue:    maxLimit,
				},
			},
		},
		HandlerFunc: m.handleNews,
	}

	cmds["latest"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "latest",
			Description: "Show the newest Void news article",
		},
		HandlerFunc: m.handleLatest,
	}
}

// fetchArticles returns all articles sorted newest first. Articles without a
// parseable date sort last.
func (m *NewsModule) fetchArticles(ctx context.Context) ([]records.Record, error) {
	articles, err := m.deps.Site.Source().FetchCollection(ctx, sitedata.CollectionNews)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(articles)
	return articles, nil
}

// SortNewestFirst orders articles by publish date descending; undated
// articles go last.
func SortNewestFirst(articles []records.Record) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, iOK := articleTime(articles[i])
		tj, jOK := articleTime(articles[j])
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

func limitOption(i *discordgo.InteractionCreate) int {
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

func articleTime(article records.Record) (time.Time, bool) {
	for _, key := range []string{"createdAt", "publishedAt", "date"} {
		if t, ok := article.Time(key); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m *NewsModule) handleNews(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	articles, err := m.fetchArticles(ctx)
	if err != nil {
		m.deps.Config.Logger.Error("News fetch failed", "error", err)
		content := "⚠️ The website data is unavailable right now. Please try again shortly."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}
	if limit := limitOption(i); limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}

	state := pagination.State{Command: listCommand}
	embed, components := renderListPage(articles, state)
	if embed == nil {
		content := "📰 No news articles yet."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *NewsModule) handleLatest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	articles, err := m.fetchArticles(ctx)
	if err != nil {
		m.deps.Config.Logger.Error("News fetch failed", "error", err)
		content := "⚠️ The website data is unavailable right now. Please try again shortly."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}
	if len(articles) == 0 {
		content := "📰 No news articles yet."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{detailEmbed(articles[0])},
	})
}

// HandleComponent owns the article list's navigation and selection controls.
func (m *NewsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	articles, err := m.fetchArticles(ctx)
	if err != nil {
		m.update(s, i, &discordgo.InteractionResponseData{
			Content:    "⚠️ The website data is unavailable right now. Please try again shortly.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		return true
	}

	switch kind {
	case pagination.KindList, pagination.KindBack:
		embed, components := renderListPage(articles, state)
		if embed == nil {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "📰 No news articles yet.",
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
		article, found := sitedata.FindByName(articles, values[0])
		if !found {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "📰 That article is no longer available.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
			return true
		}
		back := pagination.BackRow(state)
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{detailEmbed(article)},
			Components: []discordgo.MessageComponent{*back},
		})
	}

	return true
}

func (m *NewsModule) update(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

func renderListPage(articles []records.Record, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	if len(articles) == 0 {
		return nil, nil
	}

	page, totalPages := pagination.Clamp(state.Page, len(articles), pageSize)
	state.Page = page
	visible := pagination.PageSlice(articles, page, pageSize)

	var lines []string
	names := make([]string, 0, len(visible))
	for _, article := range visible {
		title := article.StrOr("title", records.Placeholder)
		names = append(names, title)

		line := "• **" + title + "**"
		if t, ok := articleTime(article); ok {
			line += fmt.Sprintf(" · <t:%d:d>", t.Unix())
		}
		lines = append(lines, line)
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("📰 Void News (page %d/%d)", page+1, totalPages)
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	if sel := pagination.SelectRow(state, names, "Read an article"); sel != nil {
		components = append(components, *sel)
	}
	return embed, components
}

func detailEmbed(article records.Record) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "📰 " + article.StrOr("title", records.Placeholder)
	embed.Description = utils.Truncate(article.FirstStr("", "summary", "excerpt", "content", "body"), 2048)
	embed.Thumbnail = utils.ThumbnailIfValid(article.FirstStr("", "image", "imageUrl", "cover"))

	if author := article.FirstStr("", "author", "writer"); author != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Author", Value: author, Inline: true,
		})
	}
	if t, ok := articleTime(article); ok {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Published", Value: fmt.Sprintf("<t:%d:D>", t.Unix()), Inline: true,
		})
	}
	if url := article.Link("url"); url != "" {
		embed.URL = url
	}
	return embed
}

// Service returns nil as this module has no services requiring initialization
func (m *NewsModule) Service() types.ModuleService {
	return nil
}
