package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"agentdesk/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound  = errors.New("key not found")
	ErrMalformed = errors.New("stored value is not valid JSON")
)

var _ do.Shutdownable = (*Store)(nil)

// Store is a durable key-value blob store: one well-known key maps to one
// JSON document. Every mutation is written through immediately.
type Store struct {
	db *sql.DB
}

func New(di *do.Injector) (*Store, error) {
	cfg := do.MustInvoke[*config.Config](di)
	return Open(cfg.Storage.Path)
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.Errorf("failed to create storage directory: %w", err)
	}

	dsn := path + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oops.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, oops.Errorf("failed to ping database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err = db.Exec(query); err != nil {
		return nil, oops.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// GetJSON reads the document stored under key into v. Returns ErrNotFound
// for an absent key and ErrMalformed when the stored text does not decode.
func (s *Store) GetJSON(ctx context.Context, key string, v any) error {
	var value string

	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return oops.Errorf("failed to read key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		return oops.Wrapf(ErrMalformed, "key %q: %s", key, err)
	}

	return nil
}

func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return oops.Errorf("failed to marshal value for key %q: %w", key, err)
	}

	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err = s.db.ExecContext(ctx, query, key, string(data), time.Now().Unix()); err != nil {
		return oops.Errorf("failed to write key %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return oops.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *Store) Shutdown() error {
	return s.db.Close()
}
