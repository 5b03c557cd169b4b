package uptime

import (
	"fmt"
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// UptimeModule reports how long the bot process has been up
type UptimeModule struct {
	startedAt time.Time
}

// New creates a new uptime module
func New(deps *types.Dependencies) types.CommandModule {
	return &UptimeModule{startedAt: deps.StartedAt}
}

// Register adds the uptime command to the command map
func (m *UptimeModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["uptime"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "uptime",
			Description: "Show how long the bot has been running",
		},
		HandlerFunc: m.handleUptime,
	}
}

func (m *UptimeModule) handleUptime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := utils.NewOKEmbed("⏱️ Uptime", fmt.Sprintf("Online for **%s**, since <t:%d:F>.",
		FormatUptime(time.Since(m.startedAt)), m.startedAt.Unix()))

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// FormatUptime renders a duration as "2d 3h 4m 5s", dropping leading zero
// units.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *UptimeModule) Service() types.ModuleService {
	return nil
}
