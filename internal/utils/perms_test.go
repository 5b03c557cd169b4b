package utils

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "guild1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "admin", Position: 10},
			{ID: "mod", Position: 5},
			{ID: "member", Position: 1},
		},
	}
}

func member(id string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: id},
		Roles: roles,
	}
}

func TestHighestRolePosition(t *testing.T) {
	g := testGuild()

	assert.Equal(t, 10, HighestRolePosition(g, member("u1", "member", "admin")))
	assert.Equal(t, 1, HighestRolePosition(g, member("u2", "member")))
	assert.Equal(t, -1, HighestRolePosition(g, member("u3")))
	assert.Equal(t, -1, HighestRolePosition(g, member("u4", "deleted-role")))
}

func TestCanActOn(t *testing.T) {
	g := testGuild()

	mod := member("mod1", "mod")
	pleb := member("pleb1", "member")
	admin := member("admin1", "admin")
	owner := member("owner", "member")
	roleless := member("newbie")

	assert.True(t, CanActOn(g, mod, pleb))
	assert.True(t, CanActOn(g, mod, roleless))
	assert.False(t, CanActOn(g, pleb, mod))
	assert.False(t, CanActOn(g, mod, admin))

	// Equal rank is not enough.
	assert.False(t, CanActOn(g, mod, member("mod2", "mod")))

	// Owner special cases.
	assert.True(t, CanActOn(g, owner, admin))
	assert.False(t, CanActOn(g, admin, owner))

	// Self-targeting.
	assert.False(t, CanActOn(g, mod, mod))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
}

func TestThumbnailIfValid(t *testing.T) {
	assert.NotNil(t, ThumbnailIfValid("https://cdn.example.com/a.png"))
	assert.Nil(t, ThumbnailIfValid("javascript:alert(1)"))
	assert.Nil(t, ThumbnailIfValid(""))
}
