package blob

import (
	"context"
)

// Storage persists opaque byte blobs under hierarchical keys.
// The bot uses it to archive rendered PDF reports.
type Storage interface {
	// Put stores data under key, overwriting any existing blob.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get retrieves the blob stored under key.
	// Returns ErrNotFound when no blob exists.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob stored under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Config selects and configures the storage backend.
type Config struct {
	Backend string `env:"BLOB_BACKEND" envDefault:"local"` // Backend is "local" or "s3".

	LocalDir string `env:"BLOB_LOCAL_DIR" envDefault:"var/reports"` // LocalDir is the base directory for the local backend.

	S3Bucket         string `env:"BLOB_S3_BUCKET"`            // S3Bucket is the bucket name for the s3 backend.
	S3Region         string `env:"BLOB_S3_REGION"`            // S3Region is the AWS region.
	S3AccessKeyID    string `env:"BLOB_S3_ACCESS_KEY_ID"`     // S3AccessKeyID is the static credential id; empty falls back to the default chain.
	S3SecretKey      string `env:"BLOB_S3_SECRET_ACCESS_KEY"` // S3SecretKey is the static credential secret.
	S3Endpoint       string `env:"BLOB_S3_ENDPOINT"`          // S3Endpoint overrides the endpoint for S3-compatible services.
	S3ForcePathStyle bool   `env:"BLOB_S3_FORCE_PATH_STYLE"`  // S3ForcePathStyle enables path-style addressing (MinIO etc).
}
