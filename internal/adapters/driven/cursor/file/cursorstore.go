// Package file provides a file-based cursor store. The watermark is kept as
// a single plain-text file and overwritten wholesale on save.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/mailvec/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// DefaultFileName is the cursor file name within the mailvec directory.
const DefaultFileName = "last_history_id.txt"

// CursorStore persists the sync watermark to a file.
type CursorStore struct {
	path string
}

// NewCursorStore creates a cursor store at the given path. An empty path
// defaults to ~/.mailvec/last_history_id.txt.
func NewCursorStore(path string) (*CursorStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".mailvec", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create cursor directory: %w", err)
	}

	return &CursorStore{path: path}, nil
}

// Load reads the stored watermark. A missing file means no cursor yet and
// returns an empty string without error.
func (s *CursorStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read cursor: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save overwrites the stored watermark.
func (s *CursorStore) Save(watermark string) error {
	if err := os.WriteFile(s.path, []byte(watermark), 0600); err != nil {
		return fmt.Errorf("write cursor: %w", err)
	}
	return nil
}

// Path returns the cursor file path.
func (s *CursorStore) Path() string {
	return s.path
}
