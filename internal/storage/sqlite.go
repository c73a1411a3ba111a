// Package storage provides SQLite-based persistence for level records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for level records.
type Store struct {
	db *sql.DB
}

// Result is one solved level.
type Result struct {
	ID         int64
	PackID     string
	LevelIndex int // zero-based position in the pack
	LevelName  string
	Moves      int
	Pushes     int
	CreatedAt  time.Time
}

// PackStats contains aggregated statistics for a level pack.
type PackStats struct {
	PackID     string
	Solved     int // distinct levels solved at least once
	Attempts   int // solved runs recorded
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			level_name TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_pack ON level_results(pack_id, level_index);
		CREATE INDEX IF NOT EXISTS idx_level_results_best ON level_results(pack_id, level_index, moves, pushes);
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

// SaveResult records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_results (pack_id, level_index, level_name, moves, pushes)
		 VALUES (?, ?, ?, ?, ?)`,
		r.PackID, r.LevelIndex, r.LevelName, r.Moves, r.Pushes,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestResult returns the record for one level: fewest moves, then fewest
// pushes, then earliest. Returns nil if the level was never solved.
func (s *Store) BestResult(packID string, levelIndex int) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT id, pack_id, level_index, level_name, moves, pushes, created_at
		 FROM level_results
		 WHERE pack_id = ? AND level_index = ?
		 ORDER BY moves ASC, pushes ASC, id ASC
		 LIMIT 1`,
		packID, levelIndex,
	)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return &r, nil
}

// PackRecords returns the best result of every solved level in a pack,
// ordered by level index.
func (s *Store) PackRecords(packID string) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT id, pack_id, level_index, level_name, moves, pushes, created_at
		 FROM level_results r
		 WHERE pack_id = ? AND id = (
			SELECT id FROM level_results b
			WHERE b.pack_id = r.pack_id AND b.level_index = r.level_index
			ORDER BY moves ASC, pushes ASC, id ASC
			LIMIT 1
		 )
		 ORDER BY level_index ASC`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearPack deletes every result of a pack.
func (s *Store) ClearPack(packID string) error {
	_, err := s.db.Exec("DELETE FROM level_results WHERE pack_id = ?", packID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GetPackStats retrieves aggregated statistics for a specific pack.
func (s *Store) GetPackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level_index), COUNT(*), MAX(created_at)
		 FROM level_results WHERE pack_id = ?`,
		packID,
	).Scan(&stats.Solved, &stats.Attempts, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllPackStats retrieves statistics for every pack that has results.
func (s *Store) GetAllPackStats() (map[string]*PackStats, error) {
	rows, err := s.db.Query(
		`SELECT pack_id, COUNT(DISTINCT level_index), COUNT(*), MAX(created_at)
		 FROM level_results
		 GROUP BY pack_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PackStats)
	for rows.Next() {
		var ps PackStats
		var lastPlayed any
		if err := rows.Scan(&ps.PackID, &ps.Solved, &ps.Attempts, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PackID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var createdAt any
	if err := row.Scan(&r.ID, &r.PackID, &r.LevelIndex, &r.LevelName, &r.Moves, &r.Pushes, &createdAt); err != nil {
		return Result{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime columns.
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
