package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/sdma/internal/database"
)

// CollectionStore persists JSON documents under fixed keys.
type CollectionStore interface {
	// Load decodes the document stored under key into dst. It reports
	// false, nil when nothing has been stored yet.
	Load(ctx context.Context, key string, dst interface{}) (bool, error)

	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, v interface{}) error
}

var collectionKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func validateKey(key string) error {
	if !collectionKeyPattern.MatchString(key) {
		return fmt.Errorf("invalid collection key %q", key)
	}
	return nil
}

// memoryCollectionStore keeps encoded documents in a map. Documents are
// stored encoded so callers never share slices with the store.
type memoryCollectionStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryCollectionStore creates a CollectionStore that lives only as long
// as the process.
func NewMemoryCollectionStore() CollectionStore {
	return &memoryCollectionStore{docs: make(map[string][]byte)}
}

func (s *memoryCollectionStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	s.mu.RLock()
	data, ok := s.docs[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return true, nil
}

func (s *memoryCollectionStore) Save(ctx context.Context, key string, v interface{}) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}

	s.mu.Lock()
	s.docs[key] = data
	s.mu.Unlock()
	return nil
}

// fileCollectionStore writes one <key>.json file per collection in dir.
type fileCollectionStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileCollectionStore creates a CollectionStore rooted at dir, creating
// the directory if needed.
func NewFileCollectionStore(dir string) (CollectionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &fileCollectionStore{dir: dir}, nil
}

func (s *fileCollectionStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileCollectionStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path(key))
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return true, nil
}

// Save writes to a temp file and renames it over the old file, so a crash
// mid-write leaves the previous document intact.
func (s *fileCollectionStore) Save(ctx context.Context, key string, v interface{}) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close collection %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", key, err)
	}
	return nil
}

// postgresCollectionStore keeps documents in the collections jsonb table.
type postgresCollectionStore struct {
	db *database.Database
}

// NewPostgresCollectionStore creates a CollectionStore backed by PostgreSQL.
func NewPostgresCollectionStore(db *database.Database) CollectionStore {
	return &postgresCollectionStore{db: db}
}

func (s *postgresCollectionStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var payload []byte
	err := s.db.Pool.QueryRow(ctx, `SELECT payload FROM collections WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query collection %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return true, nil
}

func (s *postgresCollectionStore) Save(ctx context.Context, key string, v interface{}) error {
	if err := validateKey(key); err != nil {
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}

	query := `
		INSERT INTO collections (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`
	if _, err := s.db.Pool.Exec(ctx, query, key, payload); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}
