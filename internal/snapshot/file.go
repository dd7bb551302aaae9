package snapshot

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as a single file on the local device.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store at path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Read returns the stored snapshot.
func (fs *FileStore) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Write replaces the stored snapshot. The data lands in a temporary file
// first and is renamed into place, so readers never see a partial write.
func (fs *FileStore) Write(ctx context.Context, data []byte) error {
	tmpPath := fs.path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot.
func (fs *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error { return nil }
