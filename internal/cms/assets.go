package cms

import (
	"context"
	"io"
)

// AssetBucketName is the fixed name of the bucket uploaded images are stored in.
const AssetBucketName = "portfolio-assets"

// AssetBucket stores uploaded binary assets and resolves their public URLs.
type AssetBucket interface {
	// Put stores size bytes read from r under name.
	Put(ctx context.Context, name string, contentType string, r io.Reader, size int64) error

	// Get writes the object stored under name to w and returns its content type.
	Get(ctx context.Context, name string, w io.Writer) (string, error)

	// URL returns the publicly resolvable URL of the object stored under name.
	URL(name string) string

	// ValidateSetup verifies that the bucket is reachable and writable.
	ValidateSetup(ctx context.Context) error
}
