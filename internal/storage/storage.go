package storage

import (
	"context"
	"io"
)

// Uploader writes an object and returns the key it was stored under.
// Documents are private; callers hand out access separately.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
