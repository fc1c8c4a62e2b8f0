package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Store is keyed object storage for photo bytes. Keys are the flat strings
// recorded in photo metadata (r2_key / thumbnail_key). Put exists for the
// import tooling; the serving paths only read.
type Store interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, r io.Reader) error
}
