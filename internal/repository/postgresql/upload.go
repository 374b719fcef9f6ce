package postgresql

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/jackc/pgx/v5"
)

type uploadRepositoryImpl struct {
	db *database.DB
}

func NewUploadRepository(db *database.DB) upload.UploadRepository {
	return &uploadRepositoryImpl{db: db}
}

// CreateFile implements upload.UploadRepository. The file record and all of
// its rows commit atomically: a bad row aborts the whole upload.
func (r *uploadRepositoryImpl) CreateFile(ctx context.Context, file upload.File, rows []rowmap.Row) (upload.File, error) {
	var created upload.File

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO upload_files (kind, filename, header_order, storage_path)
			VALUES ($1, $2, $3, $4)
			RETURNING id, kind, filename, uploaded_at, header_order, storage_path
		`
		err := q.QueryRow(txCtx, query, file.Kind, file.Filename, file.HeaderOrder, file.StoragePath).Scan(
			&created.ID,
			&created.Kind,
			&created.Filename,
			&created.UploadedAt,
			&created.HeaderOrder,
			&created.StoragePath,
		)
		if err != nil {
			return fmt.Errorf("failed to insert upload file: %w", err)
		}

		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(`INSERT INTO upload_rows (file_id, data) VALUES ($1, $2)`, created.ID, row)
		}
		results := tx.SendBatch(txCtx, batch)
		defer results.Close()
		for range rows {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert upload row: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return upload.File{}, err
	}

	return created, nil
}

// ListFiles implements upload.UploadRepository.
func (r *uploadRepositoryImpl) ListFiles(ctx context.Context, kind upload.Kind) ([]upload.FileListItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT f.id, f.filename, f.uploaded_at, COUNT(r.id)
		FROM upload_files f
		LEFT JOIN upload_rows r ON r.file_id = f.id
		WHERE f.kind = $1
		GROUP BY f.id, f.filename, f.uploaded_at
		ORDER BY f.uploaded_at DESC, f.id DESC
	`

	rows, err := q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", kind, err)
	}
	defer rows.Close()

	var items []upload.FileListItem
	for rows.Next() {
		var item upload.FileListItem
		if err := rows.Scan(&item.ID, &item.Filename, &item.UploadedAt, &item.TotalRows); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate file rows: %w", err)
	}

	return items, nil
}

// GetFile implements upload.UploadRepository.
func (r *uploadRepositoryImpl) GetFile(ctx context.Context, kind upload.Kind, id int64) (upload.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, filename, uploaded_at, header_order, storage_path
		FROM upload_files
		WHERE kind = $1 AND id = $2
	`

	var f upload.File
	err := q.QueryRow(ctx, query, kind, id).Scan(
		&f.ID, &f.Kind, &f.Filename, &f.UploadedAt, &f.HeaderOrder, &f.StoragePath,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return upload.File{}, upload.ErrFileNotFound
		}
		return upload.File{}, fmt.Errorf("failed to get %s file %d: %w", kind, id, err)
	}

	return f, nil
}

// LatestFile implements upload.UploadRepository.
func (r *uploadRepositoryImpl) LatestFile(ctx context.Context, kind upload.Kind) (upload.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, filename, uploaded_at, header_order, storage_path
		FROM upload_files
		WHERE kind = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1
	`

	var f upload.File
	err := q.QueryRow(ctx, query, kind).Scan(
		&f.ID, &f.Kind, &f.Filename, &f.UploadedAt, &f.HeaderOrder, &f.StoragePath,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return upload.File{}, upload.ErrFileNotFound
		}
		return upload.File{}, fmt.Errorf("failed to get latest %s file: %w", kind, err)
	}

	return f, nil
}

// GetFileRows implements upload.UploadRepository.
func (r *uploadRepositoryImpl) GetFileRows(ctx context.Context, fileID int64) ([]rowmap.Row, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT data FROM upload_rows WHERE file_id = $1 ORDER BY id`, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of file %d: %w", fileID, err)
	}
	defer rows.Close()

	return collectRowData(rows)
}

// AllRows implements upload.UploadRepository.
func (r *uploadRepositoryImpl) AllRows(ctx context.Context, kind upload.Kind) ([]rowmap.Row, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.data
		FROM upload_rows r
		JOIN upload_files f ON f.id = r.file_id
		WHERE f.kind = $1
		ORDER BY r.file_id, r.id
	`

	rows, err := q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get all %s rows: %w", kind, err)
	}
	defer rows.Close()

	return collectRowData(rows)
}

// DeleteFiles implements upload.UploadRepository. Rows cascade via FK.
func (r *uploadRepositoryImpl) DeleteFiles(ctx context.Context, kind upload.Kind, ids []int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM upload_files WHERE kind = $1 AND id = ANY($2)`, kind, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s files: %w", kind, err)
	}

	return tag.RowsAffected(), nil
}

func collectRowData(rows pgx.Rows) ([]rowmap.Row, error) {
	var out []rowmap.Row
	for rows.Next() {
		var data rowmap.Row
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row data: %w", err)
		}
		out = append(out, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate row data: %w", err)
	}
	return out, nil
}
