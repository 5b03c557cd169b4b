package sitedata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"voidbot/internal/records"
)

// PostgresSource reads the same collections from a Supabase-style Postgres
// database, where each collection is a table with an id column and a jsonb
// data column. This is the historical backend the website ran on before the
// Firestore migration.
type PostgresSource struct {
	db *sql.DB
}

// collectionTables whitelists the table per collection; table names cannot be
// bound as query parameters.
var collectionTables = map[string]string{
	CollectionTeams:       "teams",
	CollectionAmbassadors: "ambassadors",
	CollectionProducts:    "products",
	CollectionNews:        "news_articles",
	CollectionPlacements:  "placements",
	CollectionManagement:  "management",
}

func NewPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	return &PostgresSource{db: db}, nil
}

func (s *PostgresSource) FetchCollection(ctx context.Context, name string) ([]records.Record, error) {
	table, ok := collectionTables[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	return s.query(ctx, name, fmt.Sprintf(`SELECT id, data FROM %s`, table))
}

func (s *PostgresSource) FetchRecent(ctx context.Context, name, orderField string, limit int) ([]records.Record, error) {
	table, ok := collectionTables[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	q := fmt.Sprintf(`SELECT id, data FROM %s ORDER BY data->>$1 DESC NULLS LAST LIMIT $2`, table)
	return s.query(ctx, name, q, orderField, limit)
}

func (s *PostgresSource) query(ctx context.Context, name, q string, args ...any) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		// A dropped table is "collection absent", not a fetch failure.
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying collection %s: %w", name, err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning collection %s: %w", name, err)
		}
		rec := records.Record{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, (*map[string]any)(&rec)); err != nil {
				// Skip garbage rows; one bad document must not kill the page.
				continue
			}
		}
		rec["id"] = id
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection %s: %w", name, err)
	}
	return out, nil
}

// isUndefinedTable reports the Postgres undefined_table error (42P01).
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01"
	}
	return false
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
