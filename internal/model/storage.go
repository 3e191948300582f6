package model

import (
	"context"
	"io"
)

// SnapshotStorage stores exported snapshots as objects.
type SnapshotStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
