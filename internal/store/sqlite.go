package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ewchang/synapse/internal/model"
)

// SQLiteStore implements Store using SQLite. Each collection is one row in
// the collections table holding the full serialized JSON value; writes are
// replace-on-write.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// loadRaw reads the named collection's serialized value. ok is false when no
// row exists; only real database errors are returned.
func (s *SQLiteStore) loadRaw(ctx context.Context, name string) (string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", name, err)
	}
	return raw, true, nil
}

// decodeCollection unmarshals into a throwaway destination so that a
// malformed value, including valid JSON of the wrong shape that Unmarshal
// would partially populate, never reaches the caller's default.
func decodeCollection[T any](name, raw string) ([]T, bool) {
	var decoded []T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		log.Printf("store: malformed %s collection, using default: %v", name, err)
		return nil, false
	}
	return decoded, true
}

func (s *SQLiteStore) save(ctx context.Context, name string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(b), now)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) LoadMemories(ctx context.Context) ([]model.Memory, error) {
	memories := []model.Memory{}
	raw, found, err := s.loadRaw(ctx, CollectionMemories)
	if err != nil {
		return nil, err
	}
	if found {
		if decoded, ok := decodeCollection[model.Memory](CollectionMemories, raw); ok && decoded != nil {
			memories = decoded
		}
	}
	return memories, nil
}

func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	raw, found, err := s.loadRaw(ctx, CollectionTasks)
	if err != nil {
		return nil, err
	}
	if found {
		if decoded, ok := decodeCollection[model.Task](CollectionTasks, raw); ok && decoded != nil {
			tasks = decoded
		}
	}
	return tasks, nil
}

func (s *SQLiteStore) LoadCategories(ctx context.Context) ([]string, error) {
	raw, found, err := s.loadRaw(ctx, CollectionCategories)
	if err != nil {
		return nil, err
	}
	if found {
		if decoded, ok := decodeCollection[string](CollectionCategories, raw); ok && len(decoded) > 0 {
			return decoded, nil
		}
	}
	return append([]string{}, DefaultCategories...), nil
}

func (s *SQLiteStore) SaveMemories(ctx context.Context, memories []model.Memory) error {
	return s.save(ctx, CollectionMemories, memories)
}

func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return s.save(ctx, CollectionTasks, tasks)
}

func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []string) error {
	return s.save(ctx, CollectionCategories, categories)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
