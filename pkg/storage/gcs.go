package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/JaimeStill/docquest/pkg/lifecycle"
)

type gcsStore struct {
	client *gcs.Client
	bucket string
	logger *slog.Logger
}

func newGCS(ctx context.Context, cfg *Config, logger *slog.Logger) (*gcsStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &gcsStore{
		client: client,
		bucket: cfg.Container,
		logger: logger.With("system", "storage", "provider", ProviderGCS),
	}, nil
}

func (g *gcsStore) Start(lc *lifecycle.Coordinator) error {
	g.logger.Info("starting storage system")

	lc.OnStartup("storage", func() error {
		if _, err := g.client.Bucket(g.bucket).Attrs(lc.Context()); err != nil {
			g.logger.Error("storage bucket unavailable", "bucket", g.bucket, "error", err)
			return err
		}

		g.logger.Info("storage bucket ready", "bucket", g.bucket)
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := g.client.Close(); err != nil {
			g.logger.Error("storage client close failed", "error", err)
		}
	})

	return nil
}

func (g *gcsStore) object(key string) *gcs.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(key)
}

// Upload writes through a single object writer; the object only becomes
// visible once Close succeeds.
func (g *gcsStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	w := g.object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", key, err)
	}
	return nil
}

func (g *gcsStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	r, err := g.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download object %s: %w", key, err)
	}
	return r, nil
}

func (g *gcsStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := g.object(key).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (g *gcsStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	if _, err := g.object(key).Attrs(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check object existence %s: %w", key, err)
	}
	return true, nil
}
