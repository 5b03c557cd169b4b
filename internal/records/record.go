// Package records defines the loosely-typed record shape shared by every
// content command. Source documents have no enforced schema; renderers read
// optional fields through accessors and substitute placeholders when absent,
// never touching the raw map directly.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// Placeholder is shown wherever a record is missing an expected field.
const Placeholder = "N/A"

// Record is one externally-sourced document (player, team, product, article,
// placement). Values may be strings, numbers, nested maps, or slices.
type Record map[string]any

// Str returns the string value for key, or "" when absent or not a string.
func (r Record) Str(key string) string {
	if r == nil {
		return ""
	}
	if s, ok := r[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// StrOr returns the string value for key, or fallback when it is empty.
func (r Record) StrOr(key, fallback string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return fallback
}

// FirstStr returns the first non-empty string among keys, or fallback.
// Source documents rename fields between revisions (description vs bio,
// name vs displayName), so renderers try the known aliases.
func (r Record) FirstStr(fallback string, keys ...string) string {
	for _, k := range keys {
		if s := r.Str(k); s != "" {
			return s
		}
	}
	return fallback
}

// Float returns the numeric value for key, tolerating the integer and float
// shapes Firestore and JSON decoding produce.
func (r Record) Float(key string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Strings returns the value for key as a string slice. Non-string elements
// are formatted rather than dropped so a partially malformed list still
// renders every entry.
func (r Record) Strings(key string) []string {
	if r == nil {
		return nil
	}
	raw, ok := r[key].([]any)
	if !ok {
		// Already-typed slices (e.g. from tests or the Postgres source)
		if typed, ok2 := r[key].([]string); ok2 {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Maps returns the value for key as a slice of nested Records (e.g. a team's
// players array). Non-map elements are skipped.
func (r Record) Maps(key string) []Record {
	if r == nil {
		return nil
	}
	switch raw := r[key].(type) {
	case []any:
		out := make([]Record, 0, len(raw))
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	case []Record:
		return raw
	case []map[string]any:
		out := make([]Record, 0, len(raw))
		for _, m := range raw {
			out = append(out, Record(m))
		}
		return out
	}
	return nil
}

// Map returns the nested map value for key (e.g. socialLinks).
func (r Record) Map(key string) Record {
	if r == nil {
		return nil
	}
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	if m, ok := r[key].(Record); ok {
		return m
	}
	return nil
}

// Time parses the value for key as a timestamp. Native time.Time values pass
// through; strings go through the tolerant date parser since article and
// placement dates arrive in whatever format the website stored.
func (r Record) Time(key string) (time.Time, bool) {
	if r == nil {
		return time.Time{}, false
	}
	switch v := r[key].(type) {
	case time.Time:
		return v, true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if parsed, err := dateparser.Parse(nil, v); err == nil {
			return parsed.Time, true
		}
	}
	return time.Time{}, false
}

// Link returns the value for key only when it is a URL Discord accepts for
// embed images and buttons (http or https).
func (r Record) Link(key string) string {
	u := r.Str(key)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return ""
}

// Name returns the record's display name under its known aliases.
func (r Record) Name() string {
	return r.FirstStr("", "name", "displayName", "title", "username")
}
