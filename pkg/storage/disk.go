// Package storage provides the filesystem abstraction behind category and
// item image uploads.
//
// Two drivers are available:
//   - "local"  - local filesystem (default), served under /storage/
//   - "s3"     - S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
package storage

import (
	"context"
	"io"
)

// Disk is the filesystem driver interface. It is injected into the catalog
// services so tests can substitute a failing disk.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(ctx context.Context, path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Deleting an absent file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
