package upload

import (
	"context"

	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

type UploadRepository interface {
	// CreateFile persists the file record and all rows in one transaction;
	// a failure leaves nothing behind (uploads are never partially ingested).
	CreateFile(ctx context.Context, file File, rows []rowmap.Row) (File, error)

	ListFiles(ctx context.Context, kind Kind) ([]FileListItem, error)
	GetFile(ctx context.Context, kind Kind, id int64) (File, error)

	// LatestFile returns the single most recently uploaded file of a kind,
	// or ErrFileNotFound when none exists.
	LatestFile(ctx context.Context, kind Kind) (File, error)

	GetFileRows(ctx context.Context, fileID int64) ([]rowmap.Row, error)

	// AllRows streams every row of a kind across all of its files.
	AllRows(ctx context.Context, kind Kind) ([]rowmap.Row, error)

	DeleteFiles(ctx context.Context, kind Kind, ids []int64) (int64, error)
}
