package fetch

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// State is a row from the corpus_sources table.
type State struct {
	ID           string
	Name         string
	URL          string
	LastCheck    *int64
	LastStatus   *int
	LastError    *string
	DownloadedAt *int64
	UpdatedAt    int64
}

// StateDB tracks per-source download and availability state in SQLite.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite database at path and ensures the
// corpus_sources table exists.
func OpenStateDB(path string) (*StateDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS corpus_sources (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		url           TEXT NOT NULL,
		last_check    INTEGER,
		last_status   INTEGER,
		last_error    TEXT,
		downloaded_at INTEGER,
		updated_at    INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus_sources table: %w", err)
	}

	return &StateDB{db: db}, nil
}

func (s *StateDB) Close() error { return s.db.Close() }

// Seed inserts a row per source (INSERT OR IGNORE, so manual URL overrides for a
// mirror survive restarts).
func (s *StateDB) Seed(sources []Source) error {
	const q = `INSERT OR IGNORE INTO corpus_sources (id, name, url, updated_at)
		VALUES (?, ?, ?, ?)`

	now := time.Now().Unix()
	for _, src := range sources {
		if _, err := s.db.Exec(q, src.ID, src.Name, src.URL, now); err != nil {
			return fmt.Errorf("seed %s: %w", src.ID, err)
		}
	}
	return nil
}

// GetURL returns the current download URL for a source.
func (s *StateDB) GetURL(id string) (string, error) {
	var url string
	err := s.db.QueryRow(`SELECT url FROM corpus_sources WHERE id = ?`, id).Scan(&url)
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", id, err)
	}
	return url, nil
}

// SetURL updates the download URL for a source.
func (s *StateDB) SetURL(id, url string) error {
	res, err := s.db.Exec(
		`UPDATE corpus_sources SET url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("set url for %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("source %s not found in corpus_sources", id)
	}
	return nil
}

// MarkDownloaded records a completed download.
func (s *StateDB) MarkDownloaded(id string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(
		`UPDATE corpus_sources SET downloaded_at = ?, updated_at = ? WHERE id = ?`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark downloaded %s: %w", id, err)
	}
	return nil
}

// UpdateCheck persists the result of an availability check.
func (s *StateDB) UpdateCheck(id string, status int, checkErr string) error {
	var errPtr *string
	if checkErr != "" {
		errPtr = &checkErr
	}
	_, err := s.db.Exec(
		`UPDATE corpus_sources SET last_check = ?, last_status = ?, last_error = ? WHERE id = ?`,
		time.Now().Unix(), status, errPtr, id,
	)
	if err != nil {
		return fmt.Errorf("update check for %s: %w", id, err)
	}
	return nil
}

// List returns all rows ordered by id.
func (s *StateDB) List() ([]State, error) {
	rows, err := s.db.Query(`SELECT id, name, url, last_check, last_status, last_error,
		downloaded_at, updated_at FROM corpus_sources ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var st State
		if err := rows.Scan(&st.ID, &st.Name, &st.URL, &st.LastCheck, &st.LastStatus,
			&st.LastError, &st.DownloadedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}
