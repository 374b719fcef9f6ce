package storage

import (
	"context"
	"io"
)

// FileStorage archives original uploaded workbooks so a rejected or disputed
// aggregation can always be traced back to the exact bytes that were ingested.
type FileStorage interface {
	// Upload stores a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
