package upload

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/spreadsheet"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type UploadServiceImpl struct {
	upload.UploadRepository
	user.UserRepository
	hierarchy.HierarchyService
	storage storage.FileStorage
}

func NewUploadService(uploadRepository upload.UploadRepository, userRepository user.UserRepository, hierarchyService hierarchy.HierarchyService, fileStorage storage.FileStorage) upload.UploadService {
	return &UploadServiceImpl{
		UploadRepository: uploadRepository,
		UserRepository:   userRepository,
		HierarchyService: hierarchyService,
		storage:          fileStorage,
	}
}

// Ingest implements upload.UploadService.
func (s *UploadServiceImpl) Ingest(ctx context.Context, kind upload.Kind, filename string, content []byte) (upload.FileListItem, error) {
	if !kind.Valid() {
		return upload.FileListItem{}, upload.ErrInvalidKind
	}

	header, rows, err := spreadsheet.Read(filename, content)
	if err != nil {
		return upload.FileListItem{}, err
	}
	if len(rows) == 0 {
		return upload.FileListItem{}, upload.ErrEmptyUpload
	}

	// Archive the original bytes under a collision-proof name. Archival
	// failure is non-fatal: the parsed rows are the source of truth.
	var storagePath *string
	objectName := fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), filepath.Ext(filename))
	if stored, err := s.storage.Upload(ctx, bytes.NewReader(content), objectName); err == nil {
		storagePath = &stored
	}

	file, err := s.UploadRepository.CreateFile(ctx, upload.File{
		Kind:        kind,
		Filename:    filename,
		HeaderOrder: header,
		StoragePath: storagePath,
	}, rows)
	if err != nil {
		return upload.FileListItem{}, err
	}

	return upload.FileListItem{
		ID:         file.ID,
		Filename:   file.Filename,
		UploadedAt: file.UploadedAt,
		TotalRows:  int64(len(rows)),
	}, nil
}

// ListFiles implements upload.UploadService.
func (s *UploadServiceImpl) ListFiles(ctx context.Context, kind upload.Kind) ([]upload.FileListItem, error) {
	if !kind.Valid() {
		return nil, upload.ErrInvalidKind
	}
	items, err := s.UploadRepository.ListFiles(ctx, kind)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []upload.FileListItem{}
	}
	return items, nil
}

// FileDetail implements upload.UploadService. Attendance rows are filtered by
// the requesting user's subtree visibility; other kinds return everything.
func (s *UploadServiceImpl) FileDetail(ctx context.Context, kind upload.Kind, id int64, userID int64) (upload.FileDetail, error) {
	if !kind.Valid() {
		return upload.FileDetail{}, upload.ErrInvalidKind
	}

	file, err := s.UploadRepository.GetFile(ctx, kind, id)
	if err != nil {
		return upload.FileDetail{}, err
	}
	rows, err := s.UploadRepository.GetFileRows(ctx, file.ID)
	if err != nil {
		return upload.FileDetail{}, err
	}

	if kind == upload.KindAttendance {
		caller, err := s.UserRepository.GetByID(ctx, userID)
		if err != nil {
			return upload.FileDetail{}, fmt.Errorf("failed to load requesting user: %w", err)
		}
		visibility, err := s.HierarchyService.AttendanceVisibility(ctx, caller.ScopeViewer())
		if err != nil {
			return upload.FileDetail{}, err
		}
		rows = filterAttendanceRows(rows, visibility)
	}

	if rows == nil {
		rows = []rowmap.Row{}
	}
	return upload.FileDetail{
		ID:          file.ID,
		Filename:    file.Filename,
		UploadedAt:  file.UploadedAt,
		HeaderOrder: file.HeaderOrder,
		Rows:        rows,
	}, nil
}

// DeleteFiles implements upload.UploadService.
func (s *UploadServiceImpl) DeleteFiles(ctx context.Context, kind upload.Kind, ids []int64) (int64, error) {
	if !kind.Valid() {
		return 0, upload.ErrInvalidKind
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.UploadRepository.DeleteFiles(ctx, kind, ids)
}

func filterAttendanceRows(rows []rowmap.Row, visibility hierarchy.AttendanceVisibility) []rowmap.Row {
	if visibility.Unrestricted {
		return rows
	}
	out := make([]rowmap.Row, 0, len(rows))
	for _, row := range rows {
		code := rowmap.NormalizeCode(row.Get(rowmap.EmployeeCodeKeys...))
		email := strings.ToLower(strings.TrimSpace(row.Get(rowmap.EmailKeys...)))
		department := strings.ToLower(strings.TrimSpace(row.Get(rowmap.DepartmentKeys...)))
		function := strings.ToLower(strings.TrimSpace(row.Get(rowmap.FunctionKeys...)))
		if visibility.AllowsRow(code, email, department, function) {
			out = append(out, row)
		}
	}
	return out
}
