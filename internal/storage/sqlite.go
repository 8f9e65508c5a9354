// Package storage provides SQLite-based persistence for scores and preferences.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/zapatico/internal/core"
)

// Preference keys.
const (
	keyDifficulty = "difficulty"
	keyVolume     = "volume"
	keyMetronome  = "metronome"
	keyChaos      = "cambia_chaos"
	keyHighScore  = "high_score"
)

// Store manages the SQLite database connection for scores and preferences.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID         int64
	Difficulty core.Difficulty
	Score      int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(difficulty core.Difficulty, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (difficulty, score) VALUES (?, ?)",
		difficulty.String(), score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for a difficulty.
// A nil difficulty returns the top scores across all tiers.
func (s *Store) TopScores(difficulty *core.Difficulty, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if difficulty == nil {
		rows, err = s.db.Query(
			`SELECT id, difficulty, score, created_at
			 FROM scores
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT id, difficulty, score, created_at
			 FROM scores
			 WHERE difficulty = ?
			 ORDER BY score DESC, id ASC
			 LIMIT ?`,
			difficulty.String(), limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves the whole score history, most recent first.
func (s *Store) AllScores() ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, difficulty, score, created_at
		 FROM scores
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var diff string
		var createdAt any
		if err := rows.Scan(&e.ID, &diff, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = core.ParseDifficulty(diff)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the score history. The best score is kept.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// HighScore returns the persisted best score, 0 if none.
func (s *Store) HighScore() (int, error) {
	value, ok, err := s.preference(keyHighScore)
	if err != nil || !ok {
		return 0, err
	}
	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return score, nil
}

// UpdateHighScore stores score as the best score if it beats the current one.
func (s *Store) UpdateHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(preferences.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		keyHighScore, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update high score: %w", err)
	}
	return nil
}

// LoadSettings returns the persisted preferences.
// Missing or unreadable values fall back to their defaults.
func (s *Store) LoadSettings() (core.Settings, error) {
	settings := core.DefaultSettings()

	rows, err := s.db.Query("SELECT key, value FROM preferences")
	if err != nil {
		return settings, fmt.Errorf("storage: cannot query preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("storage: cannot scan preference: %w", err)
		}

		switch key {
		case keyDifficulty:
			settings.Difficulty = core.ParseDifficulty(value)
		case keyChaos:
			settings.Chaos = core.ParseChaosLevel(value)
		case keyVolume:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.Volume = v
			}
		case keyMetronome:
			if v, err := strconv.ParseBool(value); err == nil {
				settings.MetronomeEnabled = v
			}
		}
	}

	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return settings.Normalized(), nil
}

// SaveSettings persists the preferences, clamping out-of-range values.
func (s *Store) SaveSettings(settings core.Settings) error {
	settings = settings.Normalized()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	values := map[string]string{
		keyDifficulty: settings.Difficulty.String(),
		keyChaos:      settings.Chaos.String(),
		keyVolume:     strconv.FormatFloat(settings.Volume, 'f', -1, 64),
		keyMetronome:  strconv.FormatBool(settings.MetronomeEnabled),
	}
	for key, value := range values {
		if _, err := tx.Exec(
			`INSERT INTO preferences (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit preferences: %w", err)
	}
	return nil
}

// preference reads a single preference value.
func (s *Store) preference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query preference %s: %w", key, err)
	}
	return value, true, nil
}

// Stats contains aggregated statistics for one difficulty.
type Stats struct {
	Difficulty core.Difficulty
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a difficulty.
func (s *Store) Stats(difficulty core.Difficulty) (*Stats, error) {
	stats := &Stats{Difficulty: difficulty}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE difficulty = ?`,
		difficulty.String(),
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles datetimes returned both as time.Time and as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
