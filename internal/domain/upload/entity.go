package upload

import (
	"time"

	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

// Kind separates the three spreadsheet feeds. They share one storage shape
// (header order + opaque rows) but are never mixed in queries.
type Kind string

const (
	KindAttendance Kind = "attendance"
	KindEmployee   Kind = "employee"
	KindTeams      Kind = "teams"
)

func (k Kind) Valid() bool {
	switch k {
	case KindAttendance, KindEmployee, KindTeams:
		return true
	}
	return false
}

// File is one uploaded workbook. Rows keep their original headers verbatim;
// HeaderOrder preserves column order for detail views.
type File struct {
	ID          int64
	Kind        Kind
	Filename    string
	UploadedAt  time.Time
	HeaderOrder []string
	StoragePath *string
}

type Row struct {
	ID     int64
	FileID int64
	Data   rowmap.Row
}

type FileListItem struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	TotalRows  int64     `json:"total_rows"`
}

type FileDetail struct {
	ID          int64        `json:"id"`
	Filename    string       `json:"filename"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	HeaderOrder []string     `json:"header_order"`
	Rows        []rowmap.Row `json:"rows"`
}
