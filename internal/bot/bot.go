package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"voidbot/internal/commands"
	"voidbot/internal/config"
	"voidbot/internal/health"
	"voidbot/internal/scheduler"
	"voidbot/internal/sitedata"
	"voidbot/internal/youtube"
)

// Bot represents the Discord bot
type Bot struct {
	session              *discordgo.Session
	config               *config.Config
	commandModuleHandler *commands.ModuleHandler
	scheduler            *scheduler.Scheduler
	health               *health.Server
	site                 *sitedata.Service
	ready                atomic.Bool // guards interaction handling until startup completes
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	site, err := newSiteService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error connecting to the site data backend: %w", err)
	}

	ytClient, err := youtube.NewClient(ctx, cfg.GetYouTubeAPIKey(), cfg.GetYouTubeChannelID())
	if err != nil {
		if err != youtube.ErrNotConfigured {
			return nil, fmt.Errorf("error creating YouTube client: %w", err)
		}
		cfg.Logger.Warn("YouTube client not configured; video commands disabled")
		ytClient = nil
	}

	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Create modular command handler
	handler := commands.NewModuleHandler(cfg, site, ytClient)

	bot := &Bot{
		session:              session,
		config:               cfg,
		commandModuleHandler: handler,
		site:                 site,
	}

	bot.health = health.NewServer(cfg, time.Now(), bot.ready.Load)

	// mark not ready yet (zero value false, explicit for clarity)
	bot.ready.Store(false)

	// Set intents - guilds and members for the moderation commands
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages

	// Add event handlers
	session.AddHandler(bot.onReady)

	// Slash commands and components
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// newSiteService builds the configured data backend wrapped in the TTL cache.
func newSiteService(ctx context.Context, cfg *config.Config) (*sitedata.Service, error) {
	var src sitedata.Source
	var err error

	switch backend := cfg.GetDataBackend(); backend {
	case "postgres":
		src, err = sitedata.NewPostgresSource(cfg.GetPostgresDSN())
	default:
		src, err = sitedata.NewFirestoreSource(ctx, cfg.GetFirebaseProjectID(), cfg.GetGoogleCredentialsFile())
	}
	if err != nil {
		return nil, err
	}

	cached := sitedata.NewCached(src, sitedata.DefaultTTL)
	return sitedata.NewService(cached, sitedata.KeywordClassifier(cfg.GetOpsKeywords())), nil
}

// Start starts the bot
func (b *Bot) Start() error {
	// Open connection
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.config.Logger.Warn("Error closing Discord session", "error", err)
		}
	}()
	defer func() {
		if err := b.site.Source().Close(); err != nil {
			b.config.Logger.Warn("Error closing data backend", "error", err)
		}
	}()

	// Set bot status to "initializing"
	if err := b.session.UpdateGameStatus(0, "Booting up..."); err != nil {
		b.config.Logger.Warn("Error updating bot status", "error", err)
	}

	// Register slash commands
	if err := b.commandModuleHandler.RegisterCommands(b.session); err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}

	// Initialize module services that need the Discord session
	if err := b.commandModuleHandler.InitializeModuleServices(b.session); err != nil {
		return fmt.Errorf("error initializing module services: %w", err)
	}

	b.scheduler = scheduler.NewScheduler(b.config)

	// Modules declare their own recurring tasks
	for _, job := range b.commandModuleHandler.ModuleJobs() {
		if err := b.scheduler.AddJob(job.Spec, job.Name, job.Fn); err != nil {
			b.config.Logger.Error("Failed to register module job", "job", job.Name, "error", err)
		}
	}

	// Log rotation (not part of a module)
	if err := b.scheduler.AddJob("@hourly", "log-rotation", func() {
		if err := b.config.RotateAndPruneLogs(); err != nil {
			b.config.Logger.Error("Log rotation failed", "error", err)
		}
	}); err != nil {
		b.config.Logger.Error("Failed to register log rotation", "error", err)
	}

	// Periodic backend check so connectivity problems show up in the logs
	// before a user runs a command.
	if err := b.scheduler.AddJob("@every 15m", "sitedata-health", b.checkSiteData); err != nil {
		b.config.Logger.Error("Failed to register data backend check", "error", err)
	}

	b.scheduler.Start()
	defer b.scheduler.Stop()

	b.health.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.health.Shutdown(ctx); err != nil {
			b.config.Logger.Warn("Error shutting down health endpoint", "error", err)
		}
	}()

	// Update status to indicate the bot is awake
	if err := b.session.UpdateGameStatus(0, "Void Esports | /help"); err != nil {
		b.config.Logger.Warn("Error updating bot status", "error", err)
	}

	// Signal readiness after all initialization steps complete.
	b.ready.Store(true)
	b.config.Logger.Info("Initialization complete; interactions enabled")
	b.config.Logger.Info("Void bot is now running. Press CTRL+C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanup: Unregister commands, optionally
	if os.Getenv("UNREGISTER_COMMANDS") == "true" {
		b.commandModuleHandler.UnregisterCommands(b.session)
	}

	return nil
}

func (b *Bot) checkSiteData() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for name, err := range b.site.HealthCheck(ctx) {
		if err != nil {
			b.config.Logger.Warn("Data backend check failed", "collection", name, "error", err)
		}
	}
}

// onReady handles the ready event
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.config.Logger.Info("Bot received ready signal", "user", r.User.Username)

	// Set bot status to something fresh every hour
	c := time.NewTicker(time.Hour)
	go func() {
		for range c.C {
			if err := s.UpdateGameStatus(0, b.randomStatus()); err != nil {
				b.config.Logger.Warn("Error setting status", "error", err)
			}
		}
	}()
}

func (b *Bot) randomStatus() string {
	randomStuff := []string{
		"Void Esports | /help",
		"Scouting new pros...",
		"Watching the grand finals...",
		"Restocking the merch shop...",
		"Counting tournament wins...",
		"Reading the latest news...",
	}

	return randomStuff[rand.IntN(len(randomStuff))]
}

// onInteractionCreate handles slash command and component interactions
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Initialization guard: reject interactions until startup has completed.
	if !b.ready.Load() {
		switch i.Type {
		case discordgo.InteractionPing:
			_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
		default:
			_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "⏳ Bot is starting up, try again in a few seconds.",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		}
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name != "" {
			b.commandModuleHandler.HandleInteraction(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.commandModuleHandler.HandleComponentInteraction(s, i)
	}
}
