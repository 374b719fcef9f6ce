package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/confidence-group/hr-analytics-go/internal/domain/upload"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/middleware"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	uploadService upload.UploadService
}

func NewFileHandler(uploadService upload.UploadService) FileHandler {
	return &FileHandlerImpl{uploadService: uploadService}
}

// Upload implements FileHandler.
func (h *FileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	kind := upload.Kind(chi.URLParam(r, "kind"))

	// Parse multipart form (max 20MB)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A file field is required", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	item, err := h.uploadService.Ingest(r.Context(), kind, fileHeader.Filename, content)
	if err != nil {
		slog.Error("Upload service error", "error", err, "kind", kind, "filename", fileHeader.Filename)
		response.HandleError(w, err)
		return
	}

	slog.Info("File uploaded", "kind", kind, "file_id", item.ID, "rows", item.TotalRows)
	response.Created(w, "File uploaded successfully", item)
}

// List implements FileHandler.
func (h *FileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	kind := upload.Kind(chi.URLParam(r, "kind"))

	items, err := h.uploadService.ListFiles(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// Detail implements FileHandler.
func (h *FileHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	kind := upload.Kind(chi.URLParam(r, "kind"))
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid file id", nil)
		return
	}

	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	detail, err := h.uploadService.FileDetail(r.Context(), kind, id, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// BulkDelete implements FileHandler.
func (h *FileHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	kind := upload.Kind(chi.URLParam(r, "kind"))

	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Bulk delete decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	deleted, err := h.uploadService.DeleteFiles(r.Context(), kind, body.IDs)
	if err != nil {
		slog.Error("Bulk delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Files deleted", "kind", kind, "count", deleted)
	response.SuccessWithMessage(w, "Files deleted successfully", map[string]int64{"deleted": deleted})
}
