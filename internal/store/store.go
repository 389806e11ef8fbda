// Package store provides SQLite persistence for hnbar: favorites, read
// stories, threshold notices and the filter settings.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abelbrown/hnbar/internal/state"
	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		author TEXT,
		score INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		posted_at INTEGER NOT NULL DEFAULT 0,
		added_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS read_stories (
		id INTEGER PRIMARY KEY,
		read_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notified (
		id INTEGER PRIMARY KEY,
		notified_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_added ON favorites(added_at);
	CREATE INDEX IF NOT EXISTS idx_read_at ON read_stories(read_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveFavorite stores a snapshot of the story. Saving an existing favorite
// refreshes the snapshot and keeps its original position.
func (s *Store) SaveFavorite(st state.Story, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO favorites (id, title, url, author, score, comments, posted_at, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			author = excluded.author,
			score = excluded.score,
			comments = excluded.comments,
			posted_at = excluded.posted_at
	`, st.ID, st.Title, st.URL, st.By, st.Score, st.Comments, unixOrZero(st.Posted), at.UnixNano())
	if err != nil {
		return fmt.Errorf("save favorite %d: %w", st.ID, err)
	}
	return nil
}

// DeleteFavorite removes a favorite. Deleting an unknown id is not an error.
func (s *Store) DeleteFavorite(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM favorites WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}
	return nil
}

// Favorites returns every favorite in the order they were added.
func (s *Store) Favorites() ([]state.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, url, author, score, comments, posted_at
		FROM favorites
		ORDER BY added_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var out []state.Story
	for rows.Next() {
		var st state.Story
		var author sql.NullString
		var posted int64
		if err := rows.Scan(&st.ID, &st.Title, &st.URL, &author, &st.Score, &st.Comments, &posted); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		st.By = author.String
		if posted != 0 {
			st.Posted = time.Unix(posted, 0)
		}
		st.Loaded = true
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead records the given story ids as read at at. Re-reading a story
// moves its marker forward.
func (s *Store) MarkRead(at time.Time, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO read_stories (id, read_at) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET read_at = excluded.read_at`)
	if err != nil {
		return fmt.Errorf("prepare mark read: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id, at.Unix()); err != nil {
			return fmt.Errorf("mark read %d: %w", id, err)
		}
	}
	return tx.Commit()
}

// ReadIDs returns the set of read story ids.
func (s *Store) ReadIDs() (map[int]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id FROM read_stories")
	if err != nil {
		return nil, fmt.Errorf("query read stories: %w", err)
	}
	defer rows.Close()

	out := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read story: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// PruneRead forgets read markers older than before and returns how many
// were removed. Stories fall off the top list long before that.
func (s *Store) PruneRead(before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM read_stories WHERE read_at < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune read stories: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// MarkNotified records a threshold notice for id. It reports true the first
// time it is called for an id and false afterwards.
func (s *Store) MarkNotified(id int, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT OR IGNORE INTO notified (id, notified_at) VALUES (?, ?)", id, at.Unix())
	if err != nil {
		return false, fmt.Errorf("mark notified %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const (
	keyActiveTab  = "filter.active_tab"
	keyScoreLimit = "filter.score_limit"
)

// SaveFilter persists the filter settings.
func (s *Store) SaveFilter(f state.Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		keyActiveTab:  string(f.ActiveTab),
		keyScoreLimit: strconv.Itoa(f.ScoreLimit),
	} {
		if _, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// LoadFilter returns the persisted filter. ok is false when nothing has
// been saved yet.
func (s *Store) LoadFilter() (f state.Filter, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tab, err := s.setting(keyActiveTab)
	if errors.Is(err, sql.ErrNoRows) {
		return state.Filter{}, false, nil
	}
	if err != nil {
		return state.Filter{}, false, err
	}
	limit, err := s.setting(keyScoreLimit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return state.Filter{}, false, err
	}

	f.ActiveTab = state.Tab(tab)
	if n, convErr := strconv.Atoi(strings.TrimSpace(limit)); convErr == nil {
		f.ScoreLimit = n
	}
	return f, true, nil
}

// setting reads a single key. Caller must hold s.mu.
func (s *Store) setting(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	return v, err
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
