package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/JaimeStill/docquest/pkg/storage"
)

// BlobStore keeps artifacts as blobs under a key prefix, one prefix per document.
type BlobStore struct {
	blobs  storage.System
	prefix string
}

// NewBlobStore creates a BlobStore writing keys of the form prefix/name.
func NewBlobStore(blobs storage.System, prefix string) *BlobStore {
	return &BlobStore{blobs: blobs, prefix: prefix}
}

func (s *BlobStore) key(name Name) string {
	return path.Join(s.prefix, string(name))
}

func (s *BlobStore) Read(ctx context.Context, name Name) ([]byte, error) {
	rc, err := s.blobs.Download(ctx, s.key(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %w", ErrIO, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, name, err)
	}
	return data, nil
}

func (s *BlobStore) Write(ctx context.Context, name Name, data []byte) error {
	if err := s.blobs.Upload(ctx, s.key(name), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("%w: upload %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, name Name) error {
	err := s.blobs.Delete(ctx, s.key(name))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: delete %s: %w", ErrIO, name, err)
	}
	return nil
}

func (s *BlobStore) Exists(ctx context.Context, name Name) (bool, error) {
	ok, err := s.blobs.Exists(ctx, s.key(name))
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrIO, name, err)
	}
	return ok, nil
}
