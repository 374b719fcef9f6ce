package upload

import (
	"context"
	"io"
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadRepository struct {
	upload.UploadRepository
	createdFile upload.File
	createdRows []rowmap.Row
	rows        []rowmap.Row
}

func (f *fakeUploadRepository) CreateFile(ctx context.Context, file upload.File, rows []rowmap.Row) (upload.File, error) {
	file.ID = 7
	f.createdFile = file
	f.createdRows = rows
	return file, nil
}

func (f *fakeUploadRepository) GetFile(ctx context.Context, kind upload.Kind, id int64) (upload.File, error) {
	return upload.File{ID: id, Kind: kind, Filename: "attendance.csv"}, nil
}

func (f *fakeUploadRepository) GetFileRows(ctx context.Context, fileID int64) ([]rowmap.Row, error) {
	return f.rows, nil
}

type fakeUserRepository struct {
	user.UserRepository
	u user.User
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	return f.u, nil
}

type fakeHierarchyService struct {
	hierarchy.HierarchyService
	visibility hierarchy.AttendanceVisibility
}

func (f *fakeHierarchyService) AttendanceVisibility(ctx context.Context, v hierarchy.Viewer) (hierarchy.AttendanceVisibility, error) {
	return f.visibility, nil
}

type fakeStorage struct {
	uploaded []string
	fail     bool
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	f.uploaded = append(f.uploaded, path)
	return path, nil
}

func (f *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, assert.AnError
}
func (f *fakeStorage) Delete(ctx context.Context, path string) error { return nil }

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) { return false, nil }

func TestIngestRejectsInvalidKind(t *testing.T) {
	svc := NewUploadService(&fakeUploadRepository{}, &fakeUserRepository{}, &fakeHierarchyService{}, &fakeStorage{})

	_, err := svc.Ingest(context.Background(), upload.Kind("bogus"), "a.csv", []byte("Name\nAlice\n"))

	assert.ErrorIs(t, err, upload.ErrInvalidKind)
}

func TestIngestRejectsHeaderOnlyFile(t *testing.T) {
	svc := NewUploadService(&fakeUploadRepository{}, &fakeUserRepository{}, &fakeHierarchyService{}, &fakeStorage{})

	_, err := svc.Ingest(context.Background(), upload.KindAttendance, "a.csv", []byte("Name,Flag\n"))

	assert.ErrorIs(t, err, upload.ErrEmptyUpload)
}

func TestIngestParsesAndArchives(t *testing.T) {
	repo := &fakeUploadRepository{}
	store := &fakeStorage{}
	svc := NewUploadService(repo, &fakeUserRepository{}, &fakeHierarchyService{}, store)

	content := []byte("Employee Name,Flag,Work Hour\nAlice,P,8.5\nBob,A,0\n")
	item, err := svc.Ingest(context.Background(), upload.KindAttendance, "jan.csv", content)

	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, int64(2), item.TotalRows)
	assert.Equal(t, []string{"Employee Name", "Flag", "Work Hour"}, repo.createdFile.HeaderOrder)
	require.NotNil(t, repo.createdFile.StoragePath)
	require.Len(t, store.uploaded, 1)
	assert.Equal(t, "Alice", repo.createdRows[0]["Employee Name"])
}

func TestIngestSurvivesArchivalFailure(t *testing.T) {
	repo := &fakeUploadRepository{}
	svc := NewUploadService(repo, &fakeUserRepository{}, &fakeHierarchyService{}, &fakeStorage{fail: true})

	content := []byte("Employee Name,Flag\nAlice,P\n")
	_, err := svc.Ingest(context.Background(), upload.KindAttendance, "jan.csv", content)

	require.NoError(t, err)
	assert.Nil(t, repo.createdFile.StoragePath)
}

func TestFileDetailFiltersAttendanceBySubtree(t *testing.T) {
	repo := &fakeUploadRepository{rows: []rowmap.Row{
		{"Employee Email": "rep@cg-bd.com", "Flag": "P"},
		{"Employee Email": "other@cg-bd.com", "Flag": "P"},
	}}
	visibility := hierarchy.AttendanceVisibility{
		Emails:        map[string]struct{}{"rep@cg-bd.com": {}},
		EmployeeCodes: map[string]struct{}{},
	}
	svc := NewUploadService(repo, &fakeUserRepository{}, &fakeHierarchyService{visibility: visibility}, &fakeStorage{})

	detail, err := svc.FileDetail(context.Background(), upload.KindAttendance, 1, 42)

	require.NoError(t, err)
	require.Len(t, detail.Rows, 1)
	assert.Equal(t, "rep@cg-bd.com", detail.Rows[0]["Employee Email"])
}

func TestFileDetailUnrestrictedSeesEverything(t *testing.T) {
	repo := &fakeUploadRepository{rows: []rowmap.Row{
		{"Employee Email": "rep@cg-bd.com"},
		{"Employee Email": "other@cg-bd.com"},
	}}
	svc := NewUploadService(repo, &fakeUserRepository{}, &fakeHierarchyService{
		visibility: hierarchy.AttendanceVisibility{Unrestricted: true},
	}, &fakeStorage{})

	detail, err := svc.FileDetail(context.Background(), upload.KindAttendance, 1, 1)

	require.NoError(t, err)
	assert.Len(t, detail.Rows, 2)
}

func TestDeleteFilesEmptyIDs(t *testing.T) {
	svc := NewUploadService(&fakeUploadRepository{}, &fakeUserRepository{}, &fakeHierarchyService{}, &fakeStorage{})

	deleted, err := svc.DeleteFiles(context.Background(), upload.KindTeams, nil)

	require.NoError(t, err)
	assert.Zero(t, deleted)
}
