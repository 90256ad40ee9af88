// Package jsonfile stores the leaderboard as a pretty-printed JSON array.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Name is the registry name of this backend.
const Name = "json"

func init() {
	registry.Register(registry.BackendInfo{
		Name:        Name,
		Description: "JSON file, rewritten atomically on every change",
		DefaultPath: "~/.snake/leaderboard.json",
	}, func(path string) (leaderboard.Backend, error) {
		return Open(path)
	})
}

// Backend reads and writes a single JSON file.
type Backend struct {
	path string
}

// Open prepares a backend for path, creating parent directories.
// The file itself is created on the first save.
func Open(path string) (*Backend, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: cannot create directory %s: %w", dir, err)
	}
	return &Backend{path: path}, nil
}

// Path returns the file location.
func (b *Backend) Path() string {
	return b.path
}

// Load reads the table. A missing file is an empty table.
func (b *Backend) Load() ([]leaderboard.Entry, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []leaderboard.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", b.path, err)
	}

	var entries []leaderboard.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", b.path, err)
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return entries, nil
}

// Save replaces the file with entries via a temp file and rename, so a
// crash never leaves a half-written board.
func (b *Backend) Save(entries []leaderboard.Entry) error {
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(filepath.Dir(b.path), ".leaderboard-*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("jsonfile: close: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("jsonfile: replace %s: %w", b.path, err)
	}
	return nil
}

// Close is a no-op; the file is never held open.
func (b *Backend) Close() error {
	return nil
}
