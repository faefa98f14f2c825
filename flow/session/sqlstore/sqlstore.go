// Package sqlstore is a SQLite-backed session.Store, for single-process
// deployments that need session state to survive a process restart
// without standing up an external service.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/session"
)

// Store persists sessions as JSON blobs in a single SQLite table.
type Store struct {
	db *sql.DB
}

// New opens (creating if absent) a SQLite database at path and prepares
// its schema. path may be ":memory:" for an ephemeral, process-local
// store.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}

	// SQLite allows only one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent engine goroutines.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: set busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlstore: create schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get loads and decodes the session stored for id.
func (s *Store) Get(ctx context.Context, id string) (*flow.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get %q: %w", id, err)
	}

	var sess flow.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("sqlstore: decode %q: %w", id, err)
	}
	return &sess, nil
}

// Set encodes sess to JSON and upserts it keyed by id.
func (s *Store) Set(ctx context.Context, sess *flow.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sqlstore: encode %q: %w", sess.ID, err)
	}

	const stmt = `
		INSERT INTO sessions (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, stmt, sess.ID, string(raw)); err != nil {
		return fmt.Errorf("sqlstore: set %q: %w", sess.ID, err)
	}
	return nil
}

// Delete removes the stored session for id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlstore: delete %q: %w", id, err)
	}
	return nil
}

// List returns every stored session id.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlstore: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
