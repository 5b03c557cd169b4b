package commands

import (
	"fmt"
	"time"

	"voidbot/internal/commands/modules/games"
	"voidbot/internal/commands/modules/help"
	"voidbot/internal/commands/modules/merch"
	"voidbot/internal/commands/modules/mod"
	"voidbot/internal/commands/modules/news"
	"voidbot/internal/commands/modules/ping"
	"voidbot/internal/commands/modules/placements"
	"voidbot/internal/commands/modules/pros"
	"voidbot/internal/commands/modules/socials"
	"voidbot/internal/commands/modules/stats"
	"voidbot/internal/commands/modules/teams"
	"voidbot/internal/commands/modules/uptime"
	"voidbot/internal/commands/modules/videos"
	"voidbot/internal/commands/types"
	internalConfig "voidbot/internal/config"
	"voidbot/internal/confirm"
	"voidbot/internal/database"
	"voidbot/internal/sitedata"
	"voidbot/internal/youtube"

	"github.com/bwmarrin/discordgo"
)

// ModuleHandler manages command modules and routes interactions.
type ModuleHandler struct {
	commands map[string]*types.Command
	modules  map[string]types.CommandModule
	config   *internalConfig.Config
	db       *database.DB
	deps     *types.Dependencies
}

// NewModuleHandler creates a new module-based command handler. The site
// service and YouTube client are built by the bot because they need startup
// context; ytClient may be nil when no API key is configured.
func NewModuleHandler(cfg *internalConfig.Config, site *sitedata.Service, ytClient *youtube.Client) *ModuleHandler {
	db, err := database.NewDB(cfg.GetDatabasePath())
	if err != nil {
		cfg.Logger.Warn("Failed to initialize database", "error", err)
	}

	h := &ModuleHandler{
		commands: make(map[string]*types.Command),
		modules:  make(map[string]types.CommandModule),
		config:   cfg,
		db:       db,
		deps: &types.Dependencies{
			Config:    cfg,
			DB:        db,
			Site:      site,
			YouTube:   ytClient,
			Confirm:   confirm.NewManager(),
			Session:   nil, // Set later
			StartedAt: time.Now(),
		},
	}

	h.registerModules()

	return h
}

// registerModules registers all command modules
func (h *ModuleHandler) registerModules() {
	modules := []struct {
		name   string
		module types.CommandModule
	}{
		{"ping", ping.New(h.deps)},
		{"uptime", uptime.New(h.deps)},
		{"stats", stats.New(h.deps)},
		{"help", help.New(h.deps)},
		{"pros", pros.New(h.deps)},
		{"teams", teams.New(h.deps)},
		{"merch", merch.New(h.deps)},
		{"news", news.New(h.deps)},
		{"placements", placements.New(h.deps)},
		{"videos", videos.New(h.deps)},
		{"socials", socials.New(h.deps)},
		{"games", games.New(h.deps)},
		{"mod", mod.New(h.deps)},
	}

	for _, m := range modules {
		m.module.Register(h.commands, h.deps)
		h.modules[m.name] = m.module
	}
}

// GetModule returns a module by name with type assertion.
func (h *ModuleHandler) GetModule(name string) types.CommandModule {
	return h.modules[name]
}

// GetDB returns the database instance
func (h *ModuleHandler) GetDB() *database.DB {
	return h.db
}

// commandScope returns the guild commands are registered against; empty
// means global.
func (h *ModuleHandler) commandScope() string {
	return h.config.GetGuildID()
}

// RegisterCommands registers all slash commands with Discord
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session) error {
	scope := h.commandScope()

	existingCommands, err := s.ApplicationCommands(s.State.User.ID, scope)
	if err != nil {
		h.config.Logger.Warn("Error fetching existing commands", "error", err)
		return err
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, ec := range existingCommands {
		existingByName[ec.Name] = ec
	}

	for _, c := range h.commands {
		if c.Development {
			// Unregister development commands if they exist
			if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
				err := s.ApplicationCommandDelete(s.State.User.ID, scope, existing.ID)
				if err != nil {
					h.config.Logger.Warn("Error deleting command", "command", c.ApplicationCommand.Name, "error", err)
				} else {
					h.config.Logger.Info("Unregistered command", "command", c.ApplicationCommand.Name)
				}
			}
			continue
		}

		if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
			cmd, err := s.ApplicationCommandEdit(s.State.User.ID, scope, existing.ID, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Info("Updated command", "command", cmd.Name)
		} else {
			cmd, err := s.ApplicationCommandCreate(s.State.User.ID, scope, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Info("Registered command", "command", cmd.Name)
		}
	}

	return nil
}

// HandleInteraction routes slash command interactions to appropriate handlers
func (h *ModuleHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ApplicationCommandData().Name == "" {
		return
	}

	commandName := i.ApplicationCommandData().Name
	if cmd, exists := h.commands[commandName]; exists {
		cmd.HandlerFunc(s, i)
	}
}

// HandleComponentInteraction routes component interactions to the module
// that owns them. Modules claim interactions by custom ID prefix; unclaimed
// interactions get a quiet acknowledgement so the client never shows
// "interaction failed" for an expired message.
func (h *ModuleHandler) HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	for _, module := range h.modules {
		if ch, ok := module.(types.ComponentHandler); ok {
			if ch.HandleComponent(s, i) {
				return
			}
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// UnregisterCommands removes all registered commands
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session) {
	scope := h.commandScope()

	existingCommands, err := s.ApplicationCommands(s.State.User.ID, scope)
	if err != nil {
		h.config.Logger.Warn("Error fetching existing commands", "error", err)
		return
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.commands[existingCmd.Name]; exists {
			err := s.ApplicationCommandDelete(s.State.User.ID, scope, existingCmd.ID)
			if err != nil {
				h.config.Logger.Warn("Error deleting command", "command", existingCmd.Name, "error", err)
			} else {
				h.config.Logger.Info("Unregistered command", "command", existingCmd.Name)
			}
		}
	}
}

// InitializeModuleServices hydrates services with the Discord session.
// Called after the Discord session is established.
func (h *ModuleHandler) InitializeModuleServices(s *discordgo.Session) error {
	h.deps.Session = s

	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			if err := service.HydrateServiceDiscordSession(s); err != nil {
				return fmt.Errorf("failed to hydrate service with Discord session: %w", err)
			}
		}
	}

	return nil
}

// ModuleJobs collects the recurring tasks every module wants scheduled.
func (h *ModuleHandler) ModuleJobs() []types.ScheduledJob {
	var jobs []types.ScheduledJob
	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			jobs = append(jobs, service.Jobs()...)
		}
	}
	return jobs
}
