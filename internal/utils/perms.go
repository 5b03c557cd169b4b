package utils

import (
	"github.com/bwmarrin/discordgo"
)

// HasAdminPermissions checks if the user has administrator permissions
func HasAdminPermissions(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	permissions, err := s.UserChannelPermissions(i.Member.User.ID, i.ChannelID)
	if err != nil {
		return false
	}

	return permissions&discordgo.PermissionAdministrator != 0
}

// HighestRolePosition returns the position of the member's highest role.
// Members with no roles sit at -1, below every real role.
func HighestRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	highest := -1
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > highest {
				highest = role.Position
			}
		}
	}
	return highest
}

// CanActOn reports whether the invoker outranks the target in the guild's
// role hierarchy. The guild owner outranks everyone and can never be acted
// on; self-targeting is always rejected.
func CanActOn(guild *discordgo.Guild, invoker, target *discordgo.Member) bool {
	if invoker.User.ID == target.User.ID {
		return false
	}
	if target.User.ID == guild.OwnerID {
		return false
	}
	if invoker.User.ID == guild.OwnerID {
		return true
	}
	return HighestRolePosition(guild, invoker) > HighestRolePosition(guild, target)
}
