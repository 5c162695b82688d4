package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileStore keeps artifacts as files in a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the artifact directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(name Name) string {
	return filepath.Join(s.dir, string(name))
}

func (s *FileStore) Read(_ context.Context, name Name) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, name, err)
	}
	return data, nil
}

func (s *FileStore) Write(_ context.Context, name Name, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := renameio.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, name Name) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *FileStore) Exists(_ context.Context, name Name) (bool, error) {
	_, err := os.Stat(s.path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %w", ErrIO, name, err)
	}
}
