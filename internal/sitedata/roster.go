package sitedata

import (
	"context"
	"strings"

	"voidbot/internal/records"
)

// Classifier decides whether a roster member belongs to operations/management
// rather than the playing roster. The rule is data-shape dependent and
// replaceable; see KeywordClassifier for the default.
type Classifier func(records.Record) bool

// KeywordClassifier classifies a member as operations when their role
// contains any of the given keywords, case-insensitive. Only the role field
// is consulted; matching arbitrary text fields proved too fragile.
func KeywordClassifier(keywords []string) Classifier {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(r records.Record) bool {
		role := strings.ToLower(r.FirstStr("", "role", "title"))
		if role == "" {
			return false
		}
		for _, k := range lowered {
			if strings.Contains(role, k) {
				return true
			}
		}
		return false
	}
}

// Roster is the merged playing and operations roster across teams and
// ambassadors.
type Roster struct {
	Pros        []records.Record
	Operations  []records.Record
	Teams       []records.Record
	Ambassadors int
}

// All returns pros and operations combined.
func (r Roster) All() []records.Record {
	out := make([]records.Record, 0, len(r.Pros)+len(r.Operations))
	out = append(out, r.Pros...)
	return append(out, r.Operations...)
}

// Service is the record source adapter used by command modules: a cached
// Source plus the roster aggregation both list commands share.
type Service struct {
	source   *Cached
	classify Classifier
}

func NewService(source *Cached, classify Classifier) *Service {
	return &Service{source: source, classify: classify}
}

// Source exposes the cached source for direct collection reads.
func (s *Service) Source() *Cached {
	return s.source
}

// Roster fetches teams and ambassadors and merges their members. Team
// players are annotated with teamName/source; ambassadors with
// source=ambassador. Both reads hit the 45s cache so /pros_list, /ops_info
// and /pros_total share round-trips.
func (s *Service) Roster(ctx context.Context) (Roster, error) {
	teams, err := s.source.FetchCollection(ctx, CollectionTeams)
	if err != nil {
		return Roster{}, err
	}
	ambassadors, err := s.source.FetchCollection(ctx, CollectionAmbassadors)
	if err != nil {
		return Roster{}, err
	}
	return buildRoster(teams, ambassadors, s.classify), nil
}

func buildRoster(teams, ambassadors []records.Record, classify Classifier) Roster {
	roster := Roster{Teams: teams, Ambassadors: len(ambassadors)}

	add := func(member records.Record) {
		if classify != nil && classify(member) {
			roster.Operations = append(roster.Operations, member)
		} else {
			roster.Pros = append(roster.Pros, member)
		}
	}

	for _, team := range teams {
		teamName := team.StrOr("name", records.Placeholder)
		for _, player := range team.Maps("players") {
			member := records.Record{}
			for k, v := range player {
				member[k] = v
			}
			member["teamName"] = teamName
			member["source"] = "team"
			add(member)
		}
	}

	for _, amb := range ambassadors {
		member := records.Record{}
		for k, v := range amb {
			member[k] = v
		}
		member["teamName"] = "Ambassador"
		member["source"] = "ambassador"
		add(member)
	}

	SortByName(roster.Pros)
	SortByName(roster.Operations)
	return roster
}

// HealthCheck runs one collection read per known collection and reports each
// result. Used by /status.
func (s *Service) HealthCheck(ctx context.Context) map[string]error {
	out := make(map[string]error)
	for _, name := range []string{
		CollectionTeams,
		CollectionProducts,
		CollectionNews,
		CollectionPlacements,
		CollectionAmbassadors,
	} {
		_, err := s.source.FetchRecent(ctx, name, "createdAt", 1)
		out[name] = err
	}
	return out
}
