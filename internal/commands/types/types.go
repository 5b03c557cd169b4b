package types

import (
	"time"

	"voidbot/internal/config"
	"voidbot/internal/confirm"
	"voidbot/internal/database"
	"voidbot/internal/sitedata"
	"voidbot/internal/youtube"

	"github.com/bwmarrin/discordgo"
)

// Command represents a Discord application command with its handler
type Command struct {
	ApplicationCommand *discordgo.ApplicationCommand
	HandlerFunc        func(s *discordgo.Session, i *discordgo.InteractionCreate)
	Development        bool
}

// BaseService provides common session hydration functionality for all services
type BaseService struct {
	Session *discordgo.Session // Exported for external hydration
}

// HydrateServiceDiscordSession hydrates the service with a Discord session
func (b *BaseService) HydrateServiceDiscordSession(s *discordgo.Session) error {
	b.Session = s
	return nil
}

// ScheduledJob is a recurring task a module wants run on a cron spec
type ScheduledJob struct {
	Spec string
	Name string
	Fn   func()
}

// ModuleService represents a service that requires session initialization
// and may have recurring scheduled tasks
type ModuleService interface {
	// HydrateServiceDiscordSession hydrates the service with a Discord session
	// This is called after the Discord session is established
	HydrateServiceDiscordSession(s *discordgo.Session) error

	// Jobs returns the module's recurring tasks, or nil if it has none
	Jobs() []ScheduledJob
}

// CommandModule represents a module that can register commands
// Each module should contain:
// - Command definition(s)
// - Handler function(s)
// - Associated service if needed (max one service per module)
type CommandModule interface {
	// Register adds the module's commands to the provided map
	Register(commands map[string]*Command, deps *Dependencies)

	// Service returns the service that needs session initialization
	// Returns nil if the module has no service requiring initialization
	Service() ModuleService
}

// ComponentHandler is implemented by modules whose messages carry buttons or
// select menus. HandleComponent returns true when the module owned the
// interaction, so routing stops there.
type ComponentHandler interface {
	HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool
}

// Dependencies contains shared dependencies that command modules may need
type Dependencies struct {
	Config  *config.Config
	DB      *database.DB
	Site    *sitedata.Service
	YouTube *youtube.Client
	Confirm *confirm.Manager
	Session *discordgo.Session // Set after bot initialization

	// StartedAt is when the process came up, for uptime reporting
	StartedAt time.Time
}
