// Package storage provides SQLite-based persistence for cave highscores and
// replays. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	CaveID    string
	Level     int
	Player    string
	Score     int
	CreatedAt time.Time
}

// ReplayEntry is a stored replay of a cave.
type ReplayEntry struct {
	ID        int64
	CaveID    string
	Replay    cave.Replay
	CreatedAt time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			cave_id TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_cave_id ON scores(cave_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(cave_id, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cave_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			checksum INTEGER NOT NULL,
			moves TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			comment TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_cave_id ON replays(cave_id);
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

// SaveScore records a new score.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (cave_id, level, player, score) VALUES (?, ?, ?, ?)",
		e.CaveID, e.Level, e.Player, e.Score,
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

// TopScores retrieves the top N scores for the given cave.
// Results are ordered by score descending; ties keep insertion order.
func (s *Store) TopScores(caveID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, cave_id, level, player, score, created_at
		 FROM scores
		 WHERE cave_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		caveID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.CaveID, &e.Level, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given cave.
// Returns 0 if no scores exist.
func (s *Store) HighScore(caveID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE cave_id = ?",
		caveID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given cave.
func (s *Store) ClearScores(caveID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE cave_id = ?", caveID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveReplay stores a replay of caveID. The moves are kept in their text
// form.
func (s *Store) SaveReplay(caveID string, r cave.Replay) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO replays
		 (cave_id, level, seed, checksum, moves, player, success, score, duration_ms, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		caveID,
		r.Level,
		int64(r.Seed),
		int64(r.Checksum),
		cave.EncodeMoves(r.Moves),
		r.Player,
		r.Success,
		r.Score,
		r.Duration.Milliseconds(),
		r.Comment,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const replayColumns = `id, cave_id, level, seed, checksum, moves, player, success, score, duration_ms, comment, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (ReplayEntry, error) {
	var e ReplayEntry
	var seed, checksum, durationMS int64
	var moves string
	var createdAt any
	if err := row.Scan(
		&e.ID,
		&e.CaveID,
		&e.Replay.Level,
		&seed,
		&checksum,
		&moves,
		&e.Replay.Player,
		&e.Replay.Success,
		&e.Replay.Score,
		&durationMS,
		&e.Replay.Comment,
		&createdAt,
	); err != nil {
		return e, err
	}
	decoded, err := cave.DecodeMoves(moves)
	if err != nil {
		return e, fmt.Errorf("storage: replay %d: %w", e.ID, err)
	}
	e.Replay.Seed = uint32(seed)
	e.Replay.Checksum = uint32(checksum)
	e.Replay.Moves = decoded
	e.Replay.Duration = time.Duration(durationMS) * time.Millisecond
	e.CreatedAt = parseTimestamp(createdAt)
	e.Replay.Date = e.CreatedAt
	return e, nil
}

// ReplayByID retrieves a replay by its ID. Returns nil if there is none.
func (s *Store) ReplayByID(id int64) (*ReplayEntry, error) {
	e, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return &e, nil
}

// Replays retrieves the replays of a cave, newest first.
func (s *Store) Replays(caveID string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE cave_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		caveID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var results []ReplayEntry
	for rows.Next() {
		e, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// CaveStats contains aggregated statistics for a cave.
type CaveStats struct {
	CaveID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetCaveStats retrieves aggregated statistics for a specific cave.
func (s *Store) GetCaveStats(caveID string) (*CaveStats, error) {
	stats := &CaveStats{CaveID: caveID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE cave_id = ?`,
		caveID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get cave stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// GetAllCavesStats retrieves statistics for all caves that have been played.
func (s *Store) GetAllCavesStats() (map[string]*CaveStats, error) {
	rows, err := s.db.Query(
		`SELECT cave_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY cave_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all caves stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CaveStats)
	for rows.Next() {
		var cs CaveStats
		var lastPlayed any
		if err := rows.Scan(&cs.CaveID, &cs.GamesCount, &cs.HighScore, &cs.AvgScore, &cs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTimestamp(lastPlayed)
		stats[cs.CaveID] = &cs
	}

	return stats, rows.Err()
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
