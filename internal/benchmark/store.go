package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists one ResultSet per run.
type Store interface {
	Save(rs ResultSet) error
	Load() (*ResultSet, error)
}

// FileStore implements Store as a single JSON document at a fixed path,
// overwritten wholesale on every save. Nothing is written mid-sweep.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Save(rs ResultSet) error {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result set: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *FileStore) Load() (*ResultSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var rs ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result set: %w", err)
	}
	return &rs, nil
}
