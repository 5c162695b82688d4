package artifacts_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/pkg/lifecycle"
	"github.com/JaimeStill/docquest/pkg/storage"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := artifacts.NewFileStore(dir)
	ctx := context.Background()

	want := []record{{ID: "a", Count: 1}, {ID: "b", Count: 2}}
	if err := artifacts.Save(ctx, s, artifacts.Classified, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "classified_output.json"))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Errorf("artifact not indented: %s", raw)
	}

	got, err := artifacts.Load[[]record](ctx, s, artifacts.Classified)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}

	ok, err := s.Exists(ctx, artifacts.Classified)
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}

	if err := s.Delete(ctx, artifacts.Classified); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, artifacts.Classified); err != nil {
		t.Errorf("second delete failed: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	s := artifacts.NewFileStore(t.TempDir())
	ctx := context.Background()

	if _, err := artifacts.Load[[]record](ctx, s, artifacts.Raw); !errors.Is(err, artifacts.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	got, err := artifacts.LoadOptional[map[string]record](ctx, s, artifacts.ReviewState)
	if err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil map", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	s := artifacts.NewMemoryStore()
	ctx := context.Background()

	if err := s.Write(ctx, artifacts.Approved, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	if _, err := artifacts.LoadOptional[[]record](ctx, s, artifacts.Approved); !errors.Is(err, artifacts.ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

type mockBlobs struct {
	blobs      map[string][]byte
	uploadFunc func(key string) error
}

func (m *mockBlobs) Start(*lifecycle.Coordinator) error { return nil }

func (m *mockBlobs) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	if m.uploadFunc != nil {
		if err := m.uploadFunc(key); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *mockBlobs) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockBlobs) Delete(_ context.Context, key string) error {
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *mockBlobs) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.blobs[key]
	return ok, nil
}

func TestBlobStore(t *testing.T) {
	blobs := &mockBlobs{blobs: make(map[string][]byte)}
	s := artifacts.NewBlobStore(blobs, "documents/doc-1")
	ctx := context.Background()

	if err := artifacts.Save(ctx, s, artifacts.Raw, []record{{ID: "x"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := blobs.blobs["documents/doc-1/raw_blocks.json"]; !ok {
		t.Fatalf("unexpected keys: %v", blobs.blobs)
	}

	got, err := artifacts.Load[[]record](ctx, s, artifacts.Raw)
	if err != nil || len(got) != 1 || got[0].ID != "x" {
		t.Errorf("Load = %v, %v", got, err)
	}

	if _, err := s.Read(ctx, artifacts.Approved); !errors.Is(err, artifacts.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, artifacts.Approved); err != nil {
		t.Errorf("delete of missing blob failed: %v", err)
	}
}

func TestBlobStoreUploadFailure(t *testing.T) {
	blobs := &mockBlobs{
		blobs:      make(map[string][]byte),
		uploadFunc: func(string) error { return errors.New("network down") },
	}
	s := artifacts.NewBlobStore(blobs, "p")

	err := s.Write(context.Background(), artifacts.ReviewState, []byte("{}"))
	if !errors.Is(err, artifacts.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
}
