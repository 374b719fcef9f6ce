package upload

import (
	"context"
)

type UploadService interface {
	// Ingest parses and stores an uploaded workbook. Structural failures
	// (unreadable workbook, no header) reject the whole upload.
	Ingest(ctx context.Context, kind Kind, filename string, content []byte) (FileListItem, error)

	ListFiles(ctx context.Context, kind Kind) ([]FileListItem, error)

	// FileDetail returns the file with rows filtered by the requesting
	// user's subtree-based attendance visibility (attendance kind only;
	// roster files are admin-gated at the router).
	FileDetail(ctx context.Context, kind Kind, id int64, userID int64) (FileDetail, error)

	DeleteFiles(ctx context.Context, kind Kind, ids []int64) (int64, error)
}
