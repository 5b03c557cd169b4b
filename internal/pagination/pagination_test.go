package pagination

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := State{Command: "merch", Page: 3, Filter: "Pro Kit"}

	decoded, kind, ok := Decode(s.ListToken())
	require.True(t, ok)
	assert.Equal(t, KindList, kind)
	assert.Equal(t, "merch", decoded.Command)
	assert.Equal(t, 3, decoded.Page)
	assert.Equal(t, "Pro Kit", decoded.Filter)

	_, kind, ok = Decode(s.BackToken())
	require.True(t, ok)
	assert.Equal(t, KindBack, kind)

	_, kind, ok = Decode(s.SelectToken())
	require.True(t, ok)
	assert.Equal(t, KindSelect, kind)
}

func TestSanitizeFilter(t *testing.T) {
	assert.Equal(t, "Rocket_League", SanitizeFilter("Rocket League"))
	assert.Equal(t, "a_b_c", SanitizeFilter("a!!b??c"))
	assert.Equal(t, "", SanitizeFilter(""))

	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	assert.Len(t, SanitizeFilter(long), 40)
}

func TestTokenLengthClamped(t *testing.T) {
	filter := ""
	for i := 0; i < 200; i++ {
		filter += "a"
	}
	s := State{Command: "placements", Page: 12, Filter: filter}
	assert.LessOrEqual(t, len(s.ListToken()), MaxCustomIDLength)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"pag",
		"pag:merch",
		"pag:merch:notanumber",
		"pag::3:filter",
		"zzz:merch:3:filter",
		"confirm:kick:1:2",
	} {
		_, _, ok := Decode(id)
		assert.False(t, ok, "expected %q to be rejected", id)
	}
}

func TestDecodeNegativePageClampsToZero(t *testing.T) {
	s, _, ok := Decode("pag:news:-4:")
	require.True(t, ok)
	assert.Equal(t, 0, s.Page)
}

func TestClamp(t *testing.T) {
	page, total := Clamp(0, 23, 10)
	assert.Equal(t, 0, page)
	assert.Equal(t, 3, total)

	page, total = Clamp(99, 23, 10)
	assert.Equal(t, 2, page)
	assert.Equal(t, 3, total)

	page, total = Clamp(-1, 23, 10)
	assert.Equal(t, 0, page)
	assert.Equal(t, 3, total)

	// Empty lists still render page 1 of 1.
	page, total = Clamp(0, 0, 10)
	assert.Equal(t, 0, page)
	assert.Equal(t, 1, total)
}

func TestPageSlice(t *testing.T) {
	list := make([]int, 23)
	for i := range list {
		list[i] = i
	}

	first := PageSlice(list, 0, 10)
	require.Len(t, first, 10)
	assert.Equal(t, 0, first[0])

	last := PageSlice(list, 2, 10)
	require.Len(t, last, 3)
	assert.Equal(t, 22, last[2])

	assert.Nil(t, PageSlice(list, 5, 10))
}

func TestNavRowDisablesAtEdges(t *testing.T) {
	// 23 records at 10 per page: three pages.
	s := State{Command: "pros_list", Page: 0}
	row := NavRow(s, 3)
	require.NotNil(t, row)
	require.Len(t, row.Components, 2)

	prev := row.Components[0].(discordgo.Button)
	next := row.Components[1].(discordgo.Button)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)

	s.Page = 2
	row = NavRow(s, 3)
	prev = row.Components[0].(discordgo.Button)
	next = row.Components[1].(discordgo.Button)
	assert.False(t, prev.Disabled)
	assert.True(t, next.Disabled)

	s.Page = 1
	row = NavRow(s, 3)
	prev = row.Components[0].(discordgo.Button)
	next = row.Components[1].(discordgo.Button)
	assert.False(t, prev.Disabled)
	assert.False(t, next.Disabled)
}

func TestNavRowOmittedForSinglePage(t *testing.T) {
	assert.Nil(t, NavRow(State{Command: "teams"}, 1))
	assert.Nil(t, NavRow(State{Command: "teams"}, 0))
}

func TestSelectRowCapsOptions(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i)
	}
	row := SelectRow(State{Command: "pros_list", Page: 1}, names, "Pick a player")
	require.NotNil(t, row)

	menu := row.Components[0].(discordgo.SelectMenu)
	assert.Len(t, menu.Options, MaxSelectOptions)
	assert.Equal(t, "sel:pros_list:1:", menu.CustomID)
	assert.Equal(t, "Player 0", menu.Options[0].Value)
}

func TestSelectRowEmpty(t *testing.T) {
	assert.Nil(t, SelectRow(State{Command: "pros_list"}, nil, "Pick"))
}

func TestBackRowCarriesOriginPage(t *testing.T) {
	row := BackRow(State{Command: "merch", Page: 2, Filter: "hoodie"})
	btn := row.Components[0].(discordgo.Button)
	assert.Equal(t, "bak:merch:2:hoodie", btn.CustomID)
}
