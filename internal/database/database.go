package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
}

// Warning is one recorded moderation warning for a guild member
type Warning struct {
	ID          int       `json:"id"`
	GuildID     string    `json:"guild_id"`
	UserID      string    `json:"user_id"`
	ModeratorID string    `json:"moderator_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDB creates a new database connection and initializes tables
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_warnings_guild_user ON warnings(guild_id, user_id);
	`

	_, err := db.conn.Exec(query)
	return err
}

// AddWarning records a warning against a member and returns the member's new
// warning count for that guild.
func (db *DB) AddWarning(guildID, userID, moderatorID, reason string) (int, error) {
	query := `
	INSERT INTO warnings (guild_id, user_id, moderator_id, reason)
	VALUES (?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query, guildID, userID, moderatorID, reason)
	if err != nil {
		return 0, fmt.Errorf("failed to add warning: %w", err)
	}

	return db.CountWarnings(guildID, userID)
}

// GetWarnings retrieves a member's warnings, newest first
func (db *DB) GetWarnings(guildID, userID string) ([]Warning, error) {
	query := `
	SELECT id, guild_id, user_id, moderator_id, reason, created_at
	FROM warnings
	WHERE guild_id = ? AND user_id = ?
	ORDER BY created_at DESC
	`

	rows, err := db.conn.Query(query, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []Warning
	for rows.Next() {
		var w Warning
		err := rows.Scan(&w.ID, &w.GuildID, &w.UserID, &w.ModeratorID, &w.Reason, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warnings: %w", err)
	}

	return warnings, nil
}

// CountWarnings returns how many warnings a member has in a guild
func (db *DB) CountWarnings(guildID, userID string) (int, error) {
	var count int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ?",
		guildID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings: %w", err)
	}
	return count, nil
}

// ClearWarnings removes all of a member's warnings in a guild, returning how
// many were removed.
func (db *DB) ClearWarnings(guildID, userID string) (int, error) {
	result, err := db.conn.Exec(
		"DELETE FROM warnings WHERE guild_id = ? AND user_id = ?",
		guildID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(removed), nil
}

// GetStats returns some basic statistics about the database
func (db *DB) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalWarnings int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM warnings").Scan(&totalWarnings)
	if err != nil {
		return nil, fmt.Errorf("failed to count warnings: %w", err)
	}
	stats["total_warnings"] = totalWarnings

	var warnedUsers int
	err = db.conn.QueryRow("SELECT COUNT(DISTINCT user_id) FROM warnings").Scan(&warnedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count warned users: %w", err)
	}
	stats["warned_users"] = warnedUsers

	var lastWarning sql.NullString
	err = db.conn.QueryRow("SELECT MAX(created_at) FROM warnings").Scan(&lastWarning)
	if err != nil {
		return nil, fmt.Errorf("failed to get last warning: %w", err)
	}
	if lastWarning.Valid {
		stats["last_warning"] = lastWarning.String
	} else {
		stats["last_warning"] = "No data"
	}

	return stats, nil
}
