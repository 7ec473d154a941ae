package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Document keys. Each entity group is read and written as one unit, which is
// what keeps concurrent read-modify-write cycles simple to reason about.
const (
	docPlayers      = "players"
	docGames        = "games"
	docSchedules    = "schedules"
	docCurrentRound = "current_round"
)

// kvStore is the persistence contract the repositories are built on: whole
// JSON documents behind string keys.
type kvStore interface {
	get(ctx context.Context, key string, dst interface{}) (bool, error)
	set(ctx context.Context, key string, v interface{}) error
}

// Migrate creates the document table if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS league_documents (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create league_documents table: %w", err)
	}
	return nil
}

type documentStore struct {
	db *sql.DB
}

func (s documentStore) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM league_documents WHERE key = $1`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read document %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode document %q: %w", key, err)
	}
	return true, nil
}

func (s documentStore) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO league_documents (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, data)
	if err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

// memoryStore keeps documents in process. Used when no database is configured
// and throughout the tests. Values round-trip through JSON so callers never
// share memory with the store.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string][]byte)}
}

func (s *memoryStore) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	s.mu.RLock()
	data, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode document %q: %w", key, err)
	}
	return true, nil
}

func (s *memoryStore) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	s.mu.Lock()
	s.docs[key] = data
	s.mu.Unlock()
	return nil
}
