package viewstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tasker/internal/service"
)

// Saved is the part of the view kept between invocations.
// The edit session and the create form are never persisted.
type Saved struct {
	Filter service.Filter `json:"filter"`
	Page   int            `json:"page"`
}

// Saved returns the persistable part of the view.
func (s *Store) Saved() Saved {
	q := s.Query()
	return Saved{Filter: q.Filter, Page: q.Page}
}

// Restore applies a saved view. The page is taken as is; it is clamped
// once the first listing reports the real total.
func (s *Store) Restore(sv Saved) error {
	if err := sv.Filter.Validate(); err != nil {
		return fmt.Errorf("invalid saved filter: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = sv.Filter
	s.page = max(1, sv.Page)
	return nil
}

// LoadFile reads a saved view. A missing file yields the zero view.
func LoadFile(path string) (Saved, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Saved{Page: 1}, nil
	}
	if err != nil {
		return Saved{}, fmt.Errorf("failed to read view: %w", err)
	}

	var sv Saved
	if err := json.Unmarshal(data, &sv); err != nil {
		return Saved{}, fmt.Errorf("invalid view file %s: %w", path, err)
	}
	return sv, nil
}

// SaveFile writes a saved view with mode 0600, creating the directory if needed.
// The file is replaced atomically.
func SaveFile(path string, sv Saved) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(sv, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".view-*.json")
	if err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write view: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write view: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	return nil
}
