package stats

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const statusTimeout = 10 * time.Second

// StatsModule exposes runtime statistics and backend health checks
type StatsModule struct {
	deps *types.Dependencies
}

// New creates a new stats module
func New(deps *types.Dependencies) types.CommandModule {
	return &StatsModule{deps: deps}
}

// Register adds the stats and status commands to the command map
func (m *StatsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["stats"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "stats",
			Description: "Show bot runtime statistics",
		},
		HandlerFunc: m.handleStats,
	}

	cmds["status"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "status",
			Description: "Check connectivity to the website database and other backends",
		},
		HandlerFunc: m.handleStatus,
	}
}

func (m *StatsModule) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	guilds := len(s.State.Guilds)

	embed := utils.NewEmbed()
	embed.Title = "📊 Bot Statistics"
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Servers", Value: fmt.Sprintf("%d", guilds), Inline: true},
		{Name: "Uptime", Value: time.Since(m.deps.StartedAt).Round(time.Second).String(), Inline: true},
		{Name: "Go Version", Value: runtime.Version(), Inline: true},
		{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
		{Name: "Heap In Use", Value: fmt.Sprintf("%.1f MiB", float64(mem.HeapInuse)/1024/1024), Inline: true},
	}

	if m.deps.DB != nil {
		if dbStats, err := m.deps.DB.GetStats(); err == nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Warnings Issued",
				Value:  fmt.Sprintf("%v", dbStats["total_warnings"]),
				Inline: true,
			})
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *StatsModule) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	results := m.deps.Site.HealthCheck(ctx)

	embed := utils.NewEmbed()
	embed.Title = "🩺 Backend Status"
	embed.Description = RenderHealth(results)

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Data Backend",
		Value:  m.deps.Config.GetDataBackend(),
		Inline: true,
	})

	ytStatus := "not configured"
	if m.deps.YouTube != nil {
		ytStatus = "configured"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "YouTube API",
		Value:  ytStatus,
		Inline: true,
	})

	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// RenderHealth formats per-collection check results into embed lines, sorted
// so the output is stable.
func RenderHealth(results map[string]error) string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if err := results[name]; err != nil {
			fmt.Fprintf(&b, "🔴 `%s`: %v\n", name, err)
		} else {
			fmt.Fprintf(&b, "🟢 `%s`\n", name)
		}
	}
	if b.Len() == 0 {
		return "No collections checked."
	}
	return b.String()
}

// Service returns nil as this module has no services requiring initialization
func (m *StatsModule) Service() types.ModuleService {
	return nil
}
