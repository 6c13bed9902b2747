package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fdb/pkg/models"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("entry not found")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	queryEntries := `
	CREATE TABLE IF NOT EXISTS entries (
		entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL DEFAULT '',
		file_name TEXT NOT NULL,
		file_type TEXT NOT NULL DEFAULT '',
		file_size INTEGER NOT NULL,
		file_hash TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_content ON entries(file_size, file_hash);`

	queryAttrs := `
	CREATE TABLE IF NOT EXISTS attrs (
		entry_id INTEGER NOT NULL,
		attr_name TEXT NOT NULL,
		attr_value TEXT NOT NULL,
		FOREIGN KEY(entry_id) REFERENCES entries(entry_id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_attrs_entry ON attrs(entry_id);`

	queryLogs := `
	CREATE TABLE IF NOT EXISTS logs (
		action_id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		action TEXT NOT NULL,
		FOREIGN KEY(entry_id) REFERENCES entries(entry_id) ON DELETE CASCADE
	);`

	if _, err := s.db.Exec(queryEntries); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	if _, err := s.db.Exec(queryAttrs); err != nil {
		return fmt.Errorf("failed to create attrs table: %w", err)
	}
	if _, err := s.db.Exec(queryLogs); err != nil {
		return fmt.Errorf("failed to create logs table: %w", err)
	}
	return nil
}

// FindByContent looks up an entry by its content identity (size, hash).
func (s *Store) FindByContent(size int64, hash string) (*models.Entry, error) {
	var e models.Entry
	err := s.db.QueryRow(`
		SELECT entry_id, timestamp, file_name, file_type, file_size, file_hash
		FROM entries WHERE file_size = ? AND file_hash = ?`,
		size, hash,
	).Scan(&e.ID, &e.Timestamp, &e.FileName, &e.FileType, &e.FileSize, &e.FileHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry by content: %w", err)
	}
	return &e, nil
}

func (s *Store) GetEntry(id int64) (*models.Entry, error) {
	var e models.Entry
	err := s.db.QueryRow(`
		SELECT entry_id, timestamp, file_name, file_type, file_size, file_hash
		FROM entries WHERE entry_id = ?`,
		id,
	).Scan(&e.ID, &e.Timestamp, &e.FileName, &e.FileType, &e.FileSize, &e.FileHash)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry %d: %w", id, err)
	}
	return &e, nil
}

// InsertEntry inserts e and sets e.ID.
func (s *Store) InsertEntry(e *models.Entry) error {
	res, err := s.db.Exec(`
		INSERT INTO entries (timestamp, file_name, file_type, file_size, file_hash)
		VALUES (?, ?, ?, ?, ?)`,
		e.Timestamp, e.FileName, e.FileType, e.FileSize, e.FileHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (s *Store) SetTimestamp(id int64, timestamp string) error {
	res, err := s.db.Exec("UPDATE entries SET timestamp = ? WHERE entry_id = ?", timestamp, id)
	if err != nil {
		return fmt.Errorf("failed to update timestamp: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEntries returns entries ordered newest first. A non-empty tag
// restricts the result to entries carrying that tag. limit <= 0 means
// no limit.
func (s *Store) ListEntries(limit int, tag string) ([]models.Entry, error) {
	query := `
	SELECT entry_id, timestamp, file_name, file_type, file_size, file_hash
	FROM entries`

	var args []interface{}
	if tag != "" {
		query += `
	WHERE EXISTS (
		SELECT 1 FROM attrs
		WHERE attrs.entry_id = entries.entry_id
		AND attrs.attr_name = 'tag' AND attrs.attr_value = ?
	)`
		args = append(args, tag)
	}

	if limit <= 0 {
		limit = -1
	}
	query += " ORDER BY timestamp DESC, entry_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var results []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.FileName, &e.FileType, &e.FileSize, &e.FileHash); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return results, nil
}

func (s *Store) AddAttrs(id int64, attrs []models.Attr) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range attrs {
		if _, err := tx.Exec(
			"INSERT INTO attrs (entry_id, attr_name, attr_value) VALUES (?, ?, ?)",
			id, a.Name, a.Value,
		); err != nil {
			return fmt.Errorf("failed to insert attr %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Attrs(id int64) ([]models.Attr, error) {
	rows, err := s.db.Query(
		"SELECT attr_name, attr_value FROM attrs WHERE entry_id = ? ORDER BY rowid",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attrs: %w", err)
	}
	defer rows.Close()

	var attrs []models.Attr
	for rows.Next() {
		var a models.Attr
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("failed to scan attr: %w", err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attrs: %w", err)
	}
	return attrs, nil
}

// LogAction appends an action record for the entry, stamped with the
// current time.
func (s *Store) LogAction(id int64, action string) error {
	_, err := s.db.Exec(
		"INSERT INTO logs (entry_id, timestamp, action) VALUES (?, ?, ?)",
		id, time.Now().Format(models.TimeLayout), action,
	)
	if err != nil {
		return fmt.Errorf("failed to log action: %w", err)
	}
	return nil
}

func (s *Store) Actions(id int64) ([]models.Action, error) {
	rows, err := s.db.Query(
		"SELECT action_id, entry_id, timestamp, action FROM logs WHERE entry_id = ? ORDER BY action_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		var a models.Action
		if err := rows.Scan(&a.ID, &a.EntryID, &a.Timestamp, &a.Action); err != nil {
			return nil, fmt.Errorf("failed to scan log record: %w", err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log records: %w", err)
	}
	return actions, nil
}

// DeleteEntry removes the entry and, via cascade, its attrs and logs.
func (s *Store) DeleteEntry(id int64) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFileNames maps entry IDs to their blob names, for cleanup.
func (s *Store) ListFileNames() (map[int64]string, error) {
	rows, err := s.db.Query("SELECT entry_id, file_name FROM entries")
	if err != nil {
		return nil, fmt.Errorf("failed to query file names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
