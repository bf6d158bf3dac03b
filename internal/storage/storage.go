package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts the object storage backend holding uploaded images.
// One configured client is constructed at process start and shared by all
// requests.
type ObjectStorage interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}
