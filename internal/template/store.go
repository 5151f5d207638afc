package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store reads and writes the catalog file. The catalog is a plain JSON file
// independent of any project; it is read at startup and written only on
// explicit save.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the catalog from disk. A missing or empty store yields the
// seeded stock catalog rather than an error; a present-but-corrupt file is
// reported so user edits are not silently discarded.
func (s *Store) Load() (*Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCatalog(SeedTemplates()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading template store: %w", err)
	}

	var templates []Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("parsing template store %s: %w", s.path, err)
	}
	if len(templates) == 0 {
		return NewCatalog(SeedTemplates()), nil
	}
	return NewCatalog(templates), nil
}

// Save writes the catalog as pretty JSON, creating parent directories as
// needed.
func (s *Store) Save(c *Catalog) error {
	raw, err := json.MarshalIndent(c.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("serializing templates: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating template store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing template store: %w", err)
	}
	return nil
}
