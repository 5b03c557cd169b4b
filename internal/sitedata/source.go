// Package sitedata reads the website's content collections (teams, roster,
// products, news, placements) and normalizes the documents into records.
// Fetch failures are surfaced as errors, distinct from empty collections, so
// command handlers can show a transient-error message instead of "no data".
package sitedata

import (
	"context"
	"sort"
	"strings"

	"voidbot/internal/records"
)

// Collection names as stored by the website.
const (
	CollectionTeams       = "teams"
	CollectionAmbassadors = "ambassadors"
	CollectionProducts    = "products"
	CollectionNews        = "newsArticles"
	CollectionPlacements  = "placements"
	CollectionManagement  = "management"
)

// Source is a read-only view of the website's document collections.
// Implementations must treat an absent collection as an empty result, not an
// error; errors mean the fetch itself failed.
type Source interface {
	// FetchCollection returns every document in the named collection.
	FetchCollection(ctx context.Context, name string) ([]records.Record, error)

	// FetchRecent returns up to limit documents ordered by orderField
	// descending. Documents missing the field sort last.
	FetchRecent(ctx context.Context, name, orderField string, limit int) ([]records.Record, error)

	// Close releases the underlying client.
	Close() error
}

// SortByName orders records alphabetically by display name, case-insensitive.
func SortByName(list []records.Record) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name()) < strings.ToLower(list[j].Name())
	})
}

// FilterByGame keeps records whose game field contains the filter,
// case-insensitive. Records without a game field are kept, matching the
// website's permissive filtering. An empty filter keeps everything.
func FilterByGame(list []records.Record, game string) []records.Record {
	if game == "" {
		return list
	}
	needle := strings.ToLower(game)
	out := make([]records.Record, 0, len(list))
	for _, r := range list {
		g := r.Str("game")
		if g == "" || strings.Contains(strings.ToLower(g), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByGameStrict is FilterByGame but drops records without a game field.
// Used where the filter is a required option.
func FilterByGameStrict(list []records.Record, game string) []records.Record {
	needle := strings.ToLower(game)
	out := make([]records.Record, 0, len(list))
	for _, r := range list {
		g := r.Str("game")
		if g != "" && strings.Contains(strings.ToLower(g), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FindByName returns the first record whose name contains the query,
// case-insensitive.
func FindByName(list []records.Record, query string) (records.Record, bool) {
	needle := strings.ToLower(query)
	for _, r := range list {
		if name := r.Name(); name != "" && strings.Contains(strings.ToLower(name), needle) {
			return r, true
		}
	}
	return nil, false
}
