package mod

import (
	"fmt"
	"time"

	"voidbot/internal/confirm"
	"voidbot/internal/utils"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

var (
	kickDMTemplate = heredoc.Doc(`
		You have been kicked from %s.
		Reason: %s
	`)
	banDMTemplate = heredoc.Doc(`
		You have been banned from %s.
		Reason: %s
	`)
	timeoutDMTemplate = heredoc.Doc(`
		You have been timed out in %s for %s.
		Reason: %s
	`)
)

// actionRequest is one confirmable moderation action, fully resolved from
// the invoking interaction before the preview is shown.
type actionRequest struct {
	action   string
	target   *discordgo.User
	reason   string
	days     int
	duration time.Duration
}

func (m *ModModule) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	req, ok := m.resolveRequest(s, i, "kick", true)
	if !ok {
		return
	}
	m.preview(s, i, req)
}

func (m *ModModule) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	// A ban target may have already left the guild, so membership is not
	// required here.
	req, ok := m.resolveRequest(s, i, "ban", false)
	if !ok {
		return
	}
	m.preview(s, i, req)
}

func (m *ModModule) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	req, ok := m.resolveRequest(s, i, "timeout", true)
	if !ok {
		return
	}
	if req.duration <= 0 {
		m.editEphemeral(s, i, "❌ No timeout duration specified.")
		return
	}
	m.preview(s, i, req)
}

// resolveRequest parses the interaction options and runs every check that
// must pass before a preview is shown: guild context, target resolution and
// role hierarchy.
func (m *ModModule) resolveRequest(s *discordgo.Session, i *discordgo.InteractionCreate, action string, requireMember bool) (*actionRequest, bool) {
	if i.Member == nil || i.Member.User == nil {
		m.editEphemeral(s, i, "❌ This command can only be used in a server.")
		return nil, false
	}

	data := i.ApplicationCommandData()
	req := &actionRequest{action: action, reason: noReason}
	var targetID string
	for _, opt := range data.Options {
		switch opt.Name {
		case "target":
			targetID = opt.Value.(string)
		case "reason":
			req.reason = opt.StringValue()
		case "days":
			req.days = int(opt.IntValue())
		case "duration":
			req.duration = time.Duration(opt.IntValue()) * time.Second
		}
	}

	if targetID == "" || data.Resolved == nil || data.Resolved.Users[targetID] == nil {
		m.editEphemeral(s, i, "❌ Could not resolve the specified user.")
		return nil, false
	}
	req.target = data.Resolved.Users[targetID]

	if req.target.ID == i.Member.User.ID {
		m.editEphemeral(s, i, fmt.Sprintf("❌ You cannot %s yourself.", action))
		return nil, false
	}
	if s != nil && s.State != nil && s.State.User != nil && req.target.ID == s.State.User.ID {
		m.editEphemeral(s, i, fmt.Sprintf("❌ I cannot %s myself.", action))
		return nil, false
	}

	targetMember, err := m.opts.GuildMember(s, i.GuildID, req.target.ID)
	if err != nil {
		if requireMember {
			m.editEphemeral(s, i, "❌ That user is not in this server.")
			return nil, false
		}
		// Banning a user who already left: no hierarchy to check.
		return req, true
	}

	guild, err := m.opts.Guild(s, i.GuildID)
	if err != nil {
		m.deps.Config.Logger.Error("Guild lookup failed", "guild", i.GuildID, "error", err)
		m.editEphemeral(s, i, "❌ Could not verify role hierarchy. Try again.")
		return nil, false
	}
	if !utils.CanActOn(guild, i.Member, targetMember) {
		m.editEphemeral(s, i, fmt.Sprintf("❌ You cannot %s this member (role hierarchy).", action))
		return nil, false
	}
	return req, true
}

// preview renders the confirm/cancel prompt and arms the pending action.
func (m *ModModule) preview(s *discordgo.Session, i *discordgo.InteractionCreate, req *actionRequest) {
	invokerID := i.Member.User.ID
	key := confirm.Key(req.action, req.target.ID, invokerID)

	content := fmt.Sprintf("⚠️ **Are you sure you want to %s %s?**", req.action, req.target.Username)
	if req.action == "timeout" {
		content = fmt.Sprintf("⚠️ **Are you sure you want to timeout %s for %s?**",
			req.target.Username, formatSeconds(int(req.duration.Seconds())))
	}

	embed := previewEmbed(req, i.Member.User)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "✅ Confirm",
				Style:    discordgo.DangerButton,
				CustomID: confirm.ConfirmID(key),
			},
			discordgo.Button{
				Label:    "❌ Cancel",
				Style:    discordgo.SecondaryButton,
				CustomID: confirm.CancelID(key),
			},
		}},
	}

	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})

	guildID := i.GuildID
	interaction := i.Interaction
	m.deps.Confirm.Arm(key, invokerID,
		func() error { return m.execute(s, guildID, req, i.Member.User) },
		func() {
			timedOut := fmt.Sprintf("⌛ %s timed out (no confirmation received).", titleAction(req.action))
			_ = m.opts.EditResponse(s, interaction, &discordgo.WebhookEdit{
				Content:    &timedOut,
				Embeds:     &[]*discordgo.MessageEmbed{},
				Components: &[]discordgo.MessageComponent{},
			})
		},
	)
}

// execute performs the privileged action. The DM goes out first for kick
// and ban since the target cannot be messaged once removed from the guild.
func (m *ModModule) execute(s *discordgo.Session, guildID string, req *actionRequest, moderator *discordgo.User) error {
	guildName := guildID
	if g, err := m.opts.Guild(s, guildID); err == nil {
		guildName = g.Name
	}

	var err error
	switch req.action {
	case "kick":
		m.dmBestEffort(s, req.target, fmt.Sprintf(kickDMTemplate, guildName, req.reason))
		err = m.opts.KickMember(s, guildID, req.target.ID, req.reason)
	case "ban":
		m.dmBestEffort(s, req.target, fmt.Sprintf(banDMTemplate, guildName, req.reason))
		err = m.opts.CreateBan(s, guildID, req.target.ID, req.reason, req.days)
	case "timeout":
		until := time.Now().Add(req.duration)
		err = m.opts.TimeoutMember(s, guildID, req.target.ID, &until)
		if err == nil {
			m.dmBestEffort(s, req.target, fmt.Sprintf(timeoutDMTemplate,
				guildName, formatSeconds(int(req.duration.Seconds())), req.reason))
		}
	default:
		err = fmt.Errorf("unknown moderation action %q", req.action)
	}
	if err != nil {
		return err
	}

	m.opts.LogModAction(m.deps.Config, s, req.action, req.target.Username, moderator.Username, req.reason)
	return nil
}

func (m *ModModule) dmBestEffort(s *discordgo.Session, target *discordgo.User, message string) {
	if err := m.opts.SendDM(s, target.ID, message); err != nil {
		m.deps.Config.Logger.Warn("Could not DM user about moderation action",
			"user", target.ID, "error", err)
	}
}

func previewEmbed(req *actionRequest, moderator *discordgo.User) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("%s %s Preview", actionEmoji(req.action), titleAction(req.action))
	embed.Color = utils.Colors.Warning()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "👤 Member", Value: fmt.Sprintf("<@%s> (%s)", req.target.ID, req.target.ID), Inline: true},
		{Name: "🛡️ Moderator", Value: moderator.Username, Inline: true},
		{Name: "📝 Reason", Value: req.reason},
	}
	switch req.action {
	case "ban":
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🧹 Message Deletion", Value: fmt.Sprintf("Last %d day(s)", req.days), Inline: true,
		})
	case "timeout":
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⏱️ Duration", Value: formatSeconds(int(req.duration.Seconds())), Inline: true,
		})
	}
	return embed
}

func actionEmoji(action string) string {
	switch action {
	case "kick":
		return "👢"
	case "ban":
		return "🔨"
	case "timeout":
		return "⏰"
	default:
		return "🛡️"
	}
}

func titleAction(action string) string {
	if action == "" {
		return action
	}
	return string(action[0]-'a'+'A') + action[1:]
}

// formatSeconds renders a timeout choice the way the option label reads.
func formatSeconds(seconds int) string {
	unit := func(n int, name string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", name)
		}
		return fmt.Sprintf("%d %ss", n, name)
	}
	switch {
	case seconds < 60:
		return unit(seconds, "second")
	case seconds < 3600:
		return unit(seconds/60, "minute")
	case seconds < 86400:
		return unit(seconds/3600, "hour")
	case seconds < 604800:
		return unit(seconds/86400, "day")
	default:
		return unit(seconds/604800, "week")
	}
}
