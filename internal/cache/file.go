package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type fileEntry struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// FileStore keeps one JSON file per key under dir. A zero ttl never expires.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (s *FileStore) path(key string) string {
	if len(key) > 2 {
		return filepath.Join(s.dir, key[:2], key+".json")
	}
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var e fileEntry
	if err := json.Unmarshal(data, &e); err != nil {
		// corrupt entry: drop it and treat as a miss
		_ = os.Remove(s.path(key))
		return "", false, nil
	}

	if s.ttl > 0 && s.now().Sub(e.CreatedAt) > s.ttl {
		_ = os.Remove(s.path(key))
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	data, err := json.Marshal(fileEntry{Value: value, CreatedAt: s.now()})
	if err != nil {
		return err
	}

	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}
