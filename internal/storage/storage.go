// Package storage persists entity slices as JSON array files on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/repovault/repovault/internal/logging"
)

// Store reads and writes one JSON array file per entity type. The
// filesystem is abstracted so tests can run against an in-memory fs.
type Store struct {
	fs afero.Fs
}

// NewStore returns a store backed by the given filesystem.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOsStore returns a store backed by the operating system filesystem.
func NewOsStore() *Store {
	return NewStore(afero.NewOsFs())
}

// Save writes v as indented JSON at path, creating parent directories as
// needed.
func (s *Store) Save(path string, v any) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// Load reads the JSON file at path into v, a pointer to a slice. A
// missing file reports found=false with no error: absence means the
// entity type was not included in that backup.
func (s *Store) Load(path string, v any) (bool, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return true, nil
}
