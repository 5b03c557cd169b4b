// Package videos serves the YouTube channel commands.
package videos

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/pagination"
	"voidbot/internal/utils"
	"voidbot/internal/youtube"

	"github.com/bwmarrin/discordgo"
)

const (
	pageSize     = 5
	fetchTimeout = 15 * time.Second

	listCommand = "videos"

	// defaultLimit is how many videos the list fetches when no limit is given.
	defaultLimit = 15
	maxLimit     = 25
)

var minLimit = 1.0

type videosOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
	FetchRecent  func(ctx context.Context, limit int) ([]youtube.Video, error)
}

// VideosModule implements the CommandModule interface for the video commands
type VideosModule struct {
	deps *types.Dependencies
	opts videosOpts
}

// New creates a new videos module
func New(deps *types.Dependencies) types.CommandModule {
	m := &VideosModule{deps: deps}
	m.opts = videosOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
		FetchRecent: func(ctx context.Context, limit int) ([]youtube.Video, error) {
			if deps.YouTube == nil {
				return nil, youtube.ErrNotConfigured
			}
			return deps.YouTube.RecentUploads(ctx, limit)
		},
	}
	return m
}

// Register adds the video commands to the command map
func (m *VideosModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds[listCommand] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        listCommand,
			Description: "Browse recent long-form videos from the Void YouTube channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "How many videos to fetch (1-25)",
					MinValue:    &minLimit,
					MaxValue:    maxLimit,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "longform",
					Description: "Only show long-form videos (4+ minutes), like the website",
				},
			},
		},
		HandlerFunc: m.handleVideos,
	}

	cmds["latest_video"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "latest_video",
			Description: "Show the newest long-form video from the Void YouTube channel",
		},
		HandlerFunc: m.handleLatestVideo,
	}
}

func listOptions(i *discordgo.InteractionCreate) (limit int, longform bool) {
	limit, longform = defaultLimit, true
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "limit":
			limit = int(opt.IntValue())
			if limit < 1 || limit > maxLimit {
				limit = maxLimit
			}
		case "longform":
			longform = opt.BoolValue()
		}
	}
	return limit, longform
}

// encodeOptions folds the command options into the pagination filter so the
// component handler can reproduce the same list on a later click.
func encodeOptions(limit int, longform bool) string {
	if longform {
		return strconv.Itoa(limit)
	}
	return strconv.Itoa(limit) + " all"
}

func decodeOptions(filter string) (limit int, longform bool) {
	limit, longform = defaultLimit, true
	for idx, field := range strings.Fields(filter) {
		if idx == 0 {
			if n, err := strconv.Atoi(field); err == nil && n >= 1 && n <= maxLimit {
				limit = n
			}
			continue
		}
		if field == "all" {
			longform = false
		}
	}
	return limit, longform
}

// applyFilter narrows fetched uploads the way the website does: long-form
// only (with a latest-uploads fallback) unless the caller asked for all.
func applyFilter(uploads []youtube.Video, limit int, longform bool) []youtube.Video {
	videos := uploads
	if longform {
		videos = youtube.LongForm(uploads, limit)
	}
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

func (m *VideosModule) fetchVideos(s *discordgo.Session, i *discordgo.InteractionCreate, limit int, longform bool) ([]youtube.Video, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	uploads, err := m.opts.FetchRecent(ctx, limit)
	if err != nil {
		var content string
		if err == youtube.ErrNotConfigured {
			content = "📺 The YouTube integration is not configured on this bot."
		} else {
			m.deps.Config.Logger.Error("YouTube fetch failed", "error", err)
			content = "⚠️ YouTube is unavailable right now. Please try again shortly."
		}
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return nil, false
	}

	videos := applyFilter(uploads, limit, longform)
	if len(videos) == 0 {
		content := "📺 No videos found on the channel."
		_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
		return nil, false
	}
	return videos, true
}

func (m *VideosModule) handleVideos(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	limit, longform := listOptions(i)
	videos, ok := m.fetchVideos(s, i, limit, longform)
	if !ok {
		return
	}

	state := pagination.State{Command: listCommand, Filter: encodeOptions(limit, longform)}
	embed, components := renderListPage(videos, state)

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func (m *VideosModule) handleLatestVideo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	videos, ok := m.fetchVideos(s, i, 1, true)
	if !ok {
		return
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{detailEmbed(videos[0])},
	})
}

// HandleComponent owns the video list's navigation, selection and back
// controls. The encoded filter carries the original limit/longform options.
func (m *VideosModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	state, kind, ok := pagination.Decode(i.MessageComponentData().CustomID)
	if !ok || state.Command != listCommand {
		return false
	}

	limit, longform := decodeOptions(state.Filter)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	uploads, err := m.opts.FetchRecent(ctx, limit)
	if err != nil {
		content := "⚠️ YouTube is unavailable right now. Please try again shortly."
		if err == youtube.ErrNotConfigured {
			content = "📺 The YouTube integration is not configured on this bot."
		} else {
			m.deps.Config.Logger.Error("YouTube fetch failed on component", "error", err)
		}
		m.update(s, i, &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		return true
	}

	videos := applyFilter(uploads, limit, longform)
	if len(videos) == 0 {
		m.update(s, i, &discordgo.InteractionResponseData{
			Content:    "📺 No videos found on the channel.",
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		})
		return true
	}

	switch kind {
	case pagination.KindList, pagination.KindBack:
		embed, components := renderListPage(videos, state)
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})

	case pagination.KindSelect:
		values := i.MessageComponentData().Values
		if len(values) == 0 {
			return true
		}
		video, found := findByTitle(videos, values[0])
		if !found {
			m.update(s, i, &discordgo.InteractionResponseData{
				Content:    "📺 That video is no longer available.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
			return true
		}
		back := pagination.BackRow(state)
		m.update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{detailEmbed(video)},
			Components: []discordgo.MessageComponent{*back},
		})
	}

	return true
}

func (m *VideosModule) update(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// findByTitle matches a select value back to a video. Select labels are
// truncated to the custom ID cap, so the comparison truncates the same way.
func findByTitle(videos []youtube.Video, title string) (youtube.Video, bool) {
	for _, v := range videos {
		name := v.Title
		if len(name) > pagination.MaxCustomIDLength {
			name = name[:pagination.MaxCustomIDLength]
		}
		if strings.EqualFold(name, title) {
			return v, true
		}
	}
	return youtube.Video{}, false
}

func renderListPage(videos []youtube.Video, state pagination.State) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	page, totalPages := pagination.Clamp(state.Page, len(videos), pageSize)
	state.Page = page
	visible := pagination.PageSlice(videos, page, pageSize)

	var lines []string
	names := make([]string, 0, len(visible))
	for _, v := range visible {
		names = append(names, v.Title)
		lines = append(lines, fmt.Sprintf("▶️ [%s](%s) · %s · %s views",
			v.Title, v.URL(), youtube.FormatDuration(v.Duration), youtube.FormatViewCount(v.Views)))
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("📺 Latest Void Videos (page %d/%d)", page+1, totalPages)
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if nav := pagination.NavRow(state, totalPages); nav != nil {
		components = append(components, *nav)
	}
	if sel := pagination.SelectRow(state, names, "Watch a video"); sel != nil {
		components = append(components, *sel)
	}
	return embed, components
}

func detailEmbed(v youtube.Video) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "📺 " + v.Title
	embed.URL = v.URL()
	embed.Description = utils.Truncate(v.Description, 400)
	embed.Thumbnail = utils.ThumbnailIfValid(v.Thumbnail)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Duration", Value: youtube.FormatDuration(v.Duration), Inline: true},
		{Name: "Views", Value: youtube.FormatViewCount(v.Views), Inline: true},
	}
	if !v.PublishedAt.IsZero() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Published", Value: fmt.Sprintf("<t:%d:R>", v.PublishedAt.Unix()), Inline: true,
		})
	}
	return embed
}

// Service returns nil as this module has no services requiring initialization
func (m *VideosModule) Service() types.ModuleService {
	return nil
}
