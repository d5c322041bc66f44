package ports

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded media and returns a public URL for the
// stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Remove(ctx context.Context, bucket, objectName string) error
}
