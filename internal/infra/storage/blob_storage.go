// Package storage implements the blob-storage contract on gocloud.dev
// buckets, so local file buckets and GCS share one code path.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"edrop/config"
	"edrop/internal/domain/lifecycle"
	"edrop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local file bucket driver
	_ "gocloud.dev/blob/gcsblob"  // GCS bucket driver
)

// blobStorage implements service.BlobStorage over a gocloud bucket.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for blob storage, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobStorage opens the configured bucket and registers its shutdown hook.
func NewBlobStorage(params Params) (service.BlobStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be configured")
	}

	openCtx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload writes the data under a date-partitioned random key and returns the
// public URL of the stored object.
func (s *blobStorage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("pickups/%s/%s%s",
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
		path.Ext(filename),
	)

	opts := &blob.WriterOptions{
		ContentType: contentType,
	}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	s.logger.Debug("Stored pickup image",
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)

	return s.publicBaseURL + "/" + key, nil
}
