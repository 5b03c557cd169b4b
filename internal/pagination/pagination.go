// Package pagination implements the list/detail drill-down protocol shared by
// every content list command: a compact state token carried in component
// custom IDs, page clamping and slicing, and the navigation / selection /
// back controls built from that state.
//
// Token layout (custom IDs are capped at 100 characters by Discord):
//
//	pag:<command>:<page>:<filter>   prev/next navigation
//	bak:<command>:<page>:<filter>   back-to-list from a detail view
//	sel:<command>:<page>:<filter>   select menu; the chosen value is the
//	                                record's display name
package pagination

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	// MaxCustomIDLength is Discord's limit for component custom IDs and
	// select option values.
	MaxCustomIDLength = 100

	// MaxSelectOptions is Discord's limit for select menu options.
	MaxSelectOptions = 25

	// maxFilterLength keeps the encoded filter short enough that the full
	// token fits Discord's 100-char custom ID cap alongside prefix, command and page.
	maxFilterLength = 40

	listPrefix   = "pag"
	backPrefix   = "bak"
	selectPrefix = "sel"
)

// Kind distinguishes what a decoded token was attached to.
type Kind int

const (
	KindList Kind = iota
	KindBack
	KindSelect
)

// State identifies one page of one filtered list.
type State struct {
	Command string
	Page    int
	Filter  string
}

var unsafeRunes = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeFilter makes a filter transport-safe: runs of non-alphanumeric
// characters collapse to a single underscore and the result is truncated.
// The replacement is intentionally lossy and one-way.
func SanitizeFilter(filter string) string {
	if filter == "" {
		return ""
	}
	s := unsafeRunes.ReplaceAllString(filter, "_")
	if len(s) > maxFilterLength {
		s = s[:maxFilterLength]
	}
	return s
}

// DecodeFilter reverses the only reversible part of sanitization, mapping
// underscores back to spaces for display and matching.
func DecodeFilter(encoded string) string {
	return strings.ReplaceAll(encoded, "_", " ")
}

func (s State) token(prefix string) string {
	id := fmt.Sprintf("%s:%s:%d:%s", prefix, s.Command, s.Page, SanitizeFilter(s.Filter))
	if len(id) > MaxCustomIDLength {
		id = id[:MaxCustomIDLength]
	}
	return id
}

// ListToken encodes the state for a prev/next navigation control.
func (s State) ListToken() string { return s.token(listPrefix) }

// BackToken encodes the state for a detail view's back control.
func (s State) BackToken() string { return s.token(backPrefix) }

// SelectToken encodes the state for a selection control's custom ID, so the
// detail view it leads to can offer a back control to this exact page.
func (s State) SelectToken() string { return s.token(selectPrefix) }

// Decode parses a component custom ID. It returns ok=false for anything
// malformed -- wrong prefix, missing segments, non-numeric page -- so the
// caller can answer with a generic message instead of crashing the
// interaction.
func Decode(customID string) (State, Kind, bool) {
	parts := strings.SplitN(customID, ":", 4)
	if len(parts) < 3 {
		return State{}, 0, false
	}

	var kind Kind
	switch parts[0] {
	case listPrefix:
		kind = KindList
	case backPrefix:
		kind = KindBack
	case selectPrefix:
		kind = KindSelect
	default:
		return State{}, 0, false
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil || parts[1] == "" {
		return State{}, 0, false
	}
	if page < 0 {
		page = 0
	}

	filter := ""
	if len(parts) == 4 {
		filter = DecodeFilter(parts[3])
	}

	return State{Command: parts[1], Page: page, Filter: filter}, kind, true
}

// Clamp brings a requested page into [0, totalPages-1] for a list of count
// records. totalPages is never below 1, so an empty list still has a valid
// page 0.
func Clamp(page, count, pageSize int) (clamped, totalPages int) {
	totalPages = (count + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}
	return page, totalPages
}

// PageSlice returns the records on the (already clamped) page.
func PageSlice[T any](list []T, page, pageSize int) []T {
	start := page * pageSize
	if start >= len(list) {
		return nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// NavRow builds the Previous/Next button row for a list page, or nil when a
// single page needs no navigation. The edge buttons are disabled rather than
// omitted so the row keeps its shape while paging.
func NavRow(s State, totalPages int) *discordgo.ActionsRow {
	if totalPages <= 1 {
		return nil
	}
	prev := s
	prev.Page = s.Page - 1
	next := s
	next.Page = s.Page + 1

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: prev.ListToken(),
				Label:    "◀ Previous",
				Style:    discordgo.SecondaryButton,
				Disabled: s.Page <= 0,
			},
			discordgo.Button{
				CustomID: next.ListToken(),
				Label:    "Next ▶",
				Style:    discordgo.SecondaryButton,
				Disabled: s.Page >= totalPages-1,
			},
		},
	}
}

// SelectRow builds the drill-down select menu for the records visible on the
// current page, or nil when the slice is empty. Values carry the record names
// (the selection token); the custom ID carries the originating state so the
// detail view can navigate back.
func SelectRow(s State, names []string, placeholder string) *discordgo.ActionsRow {
	if len(names) == 0 {
		return nil
	}
	if len(names) > MaxSelectOptions {
		names = names[:MaxSelectOptions]
	}

	options := make([]discordgo.SelectMenuOption, 0, len(names))
	for _, name := range names {
		label := truncate(name, MaxCustomIDLength)
		options = append(options, discordgo.SelectMenuOption{
			Label: label,
			Value: label,
		})
	}

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    s.SelectToken(),
				Placeholder: placeholder,
				Options:     options,
			},
		},
	}
}

// BackRow builds the single back-to-list button for a detail view.
func BackRow(s State) *discordgo.ActionsRow {
	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: s.BackToken(),
				Label:    "◀ Back to list",
				Style:    discordgo.SecondaryButton,
			},
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
