package database

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// FileSnapshotter keeps the state as one JSON document on a hackpadfs filesystem
type FileSnapshotter struct {
	fs   hackpadfs.FS
	name string
	mu   sync.Mutex
}

// NewFileSnapshotter stores the document at name inside fs
func NewFileSnapshotter(fs hackpadfs.FS, name string) *FileSnapshotter {
	return &FileSnapshotter{fs: fs, name: name}
}

// OpenFileSnapshotter stores the document in a file on the host filesystem,
// creating the data directory if it doesn't exist
func OpenFileSnapshotter(dataDir, fileName string) (*FileSnapshotter, error) {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	fs := osfs.NewFS()
	dir, err := fs.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to map data directory: %w", err)
	}
	if err := hackpadfs.MkdirAll(fs, dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return NewFileSnapshotter(fs, path.Join(dir, fileName)), nil
}

// Save writes the document to a temporary file and renames it over the old one,
// so a concurrent reader sees either the previous or the new document
func (f *FileSnapshotter) Save(_ context.Context, s *State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.name + ".tmp"
	if err := hackpadfs.WriteFullFile(f.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := hackpadfs.Rename(f.fs, tmp, f.name); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Load reads and parses the document
func (f *FileSnapshotter) Load(_ context.Context) (*State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := hackpadfs.ReadFile(f.fs, f.name)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return Decode(data)
}

// Close is a no-op for FileSnapshotter.
func (f *FileSnapshotter) Close() error {
	return nil
}
