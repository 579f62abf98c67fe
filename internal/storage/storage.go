// Package storage archives synthesized narrations in S3-compatible
// object storage. Archiving is optional and never blocks a request.
package storage

import (
	"context"
	"io"
	"strings"
)

// ObjectStorage is the minimal surface the archive needs.
type ObjectStorage interface {
	// Upload stores an object under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the public URL for an archived object.
	GetURL(key string) string

	// EnsureBucket creates the configured bucket if it does not exist.
	EnsureBucket(ctx context.Context) error
}

// StorageType identifies the flavor of S3-compatible backend.
type StorageType string

const (
	StorageTypeS3           StorageType = "s3"
	StorageTypeR2           StorageType = "r2"
	StorageTypeS3Compatible StorageType = "s3compatible"
)

// NewStorage creates an ObjectStorage for the configured endpoint,
// auto-detecting the backend flavor from the endpoint host.
func NewStorage(cfg *S3Config) (ObjectStorage, error) {
	if cfg.Type == "" {
		cfg.Type = detectStorageType(cfg.Endpoint)
	}
	return NewS3Storage(cfg)
}

func detectStorageType(endpoint string) StorageType {
	endpoint = strings.ToLower(endpoint)
	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case endpoint == "" || strings.Contains(endpoint, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
