// Package storage contains the blob-backed implementation of picture storage.
package storage

import (
	"context"
	"log/slog"

	"catalog/config"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// bucket driver
	"gocloud.dev/gcerrors"
)

// blobPictureStore implements service.PictureStore on top of a gocloud.dev
// bucket. The bucket URL decides the backing store, file:// in development.
type blobPictureStore struct {
	bucket *blob.Bucket
}

// NewBlobPictureStore opens the configured bucket and registers its shutdown
// with the Fx lifecycle.
func NewBlobPictureStore(lc fx.Lifecycle, cfg *config.Config) (service.PictureStore, error) {
	bucket, err := blob.OpenBucket(context.Background(), cfg.Upload.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open picture bucket %q", cfg.Upload.BucketURL)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.InfoContext(ctx, "Closing picture bucket...")

			return bucket.Close()
		},
	})

	return &blobPictureStore{bucket: bucket}, nil
}

// Save writes the picture bytes under the given key, replacing any previous
// content for that key.
func (s *blobPictureStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, key, data, nil); err != nil {
		return errors.Wrapf(err, "failed to write picture %q", key)
	}

	return nil
}

// Load reads the picture bytes stored under the given key.
func (s *blobPictureStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrPictureNotFound
		}

		return nil, errors.Wrapf(err, "failed to read picture %q", key)
	}

	return data, nil
}
