// Package mod implements the guild moderation commands. Kick, ban and
// timeout go through a 30 second confirm/cancel preview so a mistyped
// target cannot be actioned by accident. Warnings persist in SQLite.
package mod

import (
	"time"

	"voidbot/internal/commands/types"
	"voidbot/internal/config"
	"voidbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const noReason = "No reason provided"

type modOpts struct {
	Respond         func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse    func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
	Guild           func(s *discordgo.Session, guildID string) (*discordgo.Guild, error)
	GuildMember     func(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error)
	KickMember      func(s *discordgo.Session, guildID, userID, reason string) error
	CreateBan       func(s *discordgo.Session, guildID, userID, reason string, days int) error
	TimeoutMember   func(s *discordgo.Session, guildID, userID string, until *time.Time) error
	SendDM          func(s *discordgo.Session, userID, message string) error
	ChannelMessages func(s *discordgo.Session, channelID string, limit int) ([]*discordgo.Message, error)
	BulkDelete      func(s *discordgo.Session, channelID string, messageIDs []string) error
	LogModAction    func(cfg *config.Config, s *discordgo.Session, action, targetTag, moderatorTag, reason string)
	LogToChannel    func(cfg *config.Config, s *discordgo.Session, m string) error
}

func defaultModOpts() modOpts {
	return modOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
		Guild: func(s *discordgo.Session, guildID string) (*discordgo.Guild, error) {
			if g, err := s.State.Guild(guildID); err == nil {
				return g, nil
			}
			return s.Guild(guildID)
		},
		GuildMember: func(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
			return s.GuildMember(guildID, userID)
		},
		KickMember: func(s *discordgo.Session, guildID, userID, reason string) error {
			return s.GuildMemberDeleteWithReason(guildID, userID, reason)
		},
		CreateBan: func(s *discordgo.Session, guildID, userID, reason string, days int) error {
			return s.GuildBanCreateWithReason(guildID, userID, reason, days)
		},
		TimeoutMember: func(s *discordgo.Session, guildID, userID string, until *time.Time) error {
			return s.GuildMemberTimeout(guildID, userID, until)
		},
		SendDM: func(s *discordgo.Session, userID, message string) error {
			ch, err := s.UserChannelCreate(userID)
			if err != nil {
				return err
			}
			_, err = s.ChannelMessageSend(ch.ID, message)
			return err
		},
		ChannelMessages: func(s *discordgo.Session, channelID string, limit int) ([]*discordgo.Message, error) {
			return s.ChannelMessages(channelID, limit, "", "", "")
		},
		BulkDelete: func(s *discordgo.Session, channelID string, messageIDs []string) error {
			return s.ChannelMessagesBulkDelete(channelID, messageIDs)
		},
		LogModAction: utils.LogModAction,
		LogToChannel: utils.LogToChannel,
	}
}

// ModModule implements the CommandModule interface for the moderation commands
type ModModule struct {
	deps *types.Dependencies
	opts modOpts
}

// New creates a new moderation module
func New(deps *types.Dependencies) types.CommandModule {
	return &ModModule{deps: deps, opts: defaultModOpts()}
}

// Register adds the moderation commands to the command map
func (m *ModModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var kickPerms int64 = discordgo.PermissionKickMembers
	var banPerms int64 = discordgo.PermissionBanMembers
	var timeoutPerms int64 = discordgo.PermissionModerateMembers
	var clearPerms int64 = discordgo.PermissionManageMessages
	guildOnly := &[]discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
	}

	targetOption := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "target",
			Description: desc,
			Required:    true,
		}
	}
	reasonOption := func(desc string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: desc,
			Required:    required,
		}
	}

	cmds["kick"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "kick",
			Description:              "Kick a member from the server",
			DefaultMemberPermissions: &kickPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				targetOption("Member to kick"),
				reasonOption("Reason for the kick", false),
			},
		},
		HandlerFunc: m.handleKick,
	}

	cmds["ban"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "ban",
			Description:              "Ban a user from the server",
			DefaultMemberPermissions: &banPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				targetOption("User to ban"),
				reasonOption("Reason for the ban (shown in audit log)", false),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "days",
					Description: "Number of days of messages to purge (default: 0)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Don't delete any", Value: 0},
						{Name: "1 day", Value: 1},
						{Name: "2 days", Value: 2},
						{Name: "3 days", Value: 3},
						{Name: "4 days", Value: 4},
						{Name: "5 days", Value: 5},
						{Name: "6 days", Value: 6},
						{Name: "7 days", Value: 7},
					},
				},
			},
		},
		HandlerFunc: m.handleBan,
	}

	cmds["timeout"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "timeout",
			Description:              "Timeout a member",
			DefaultMemberPermissions: &timeoutPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				targetOption("Member to timeout"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "duration",
					Description: "Timeout duration",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "60 seconds", Value: 60},
						{Name: "5 minutes", Value: 300},
						{Name: "10 minutes", Value: 600},
						{Name: "1 hour", Value: 3600},
						{Name: "6 hours", Value: 21600},
						{Name: "12 hours", Value: 43200},
						{Name: "1 day", Value: 86400},
						{Name: "1 week", Value: 604800},
					},
				},
				reasonOption("Reason for the timeout", false),
			},
		},
		HandlerFunc: m.handleTimeout,
	}

	cmds["warn"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "warn",
			Description:              "Warn a member (recorded)",
			DefaultMemberPermissions: &kickPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				targetOption("Member to warn"),
				reasonOption("Reason for the warning", true),
			},
		},
		HandlerFunc: m.handleWarn,
	}

	cmds["clear"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "clear",
			Description:              "Bulk delete recent messages in this channel",
			DefaultMemberPermissions: &clearPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Number of messages to clear (1-100)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Only clear messages from this user",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleClear,
	}
}

func (m *ModModule) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (m *ModModule) editEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}

// Service returns nil as this module has no services requiring initialization
func (m *ModModule) Service() types.ModuleService {
	return nil
}
