package http

import (
	"log/slog"
	"net/http"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/middleware"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler interface {
	Weekly(w http.ResponseWriter, r *http.Request)
	OD(w http.ResponseWriter, r *http.Request)
	TeamsUserActivity(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// Weekly implements AnalyticsHandler. The group_by dimension comes from the
// URL; an optional breakdown=department query adds per-department cells and
// company-month rollups for the function dimension.
func (h *AnalyticsHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	groupBy := analytics.GroupBy(chi.URLParam(r, "group_by"))
	breakdown := r.URL.Query().Get("breakdown")

	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.Weekly(r.Context(), userID, groupBy, breakdown)
	if err != nil {
		slog.Error("Weekly analytics service error", "error", err, "group_by", groupBy)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OD implements AnalyticsHandler. On-duty tallies per function or employee.
func (h *AnalyticsHandlerImpl) OD(w http.ResponseWriter, r *http.Request) {
	groupBy := chi.URLParam(r, "group_by")

	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.OD(r.Context(), userID, groupBy)
	if err != nil {
		slog.Error("OD analytics service error", "error", err, "group_by", groupBy)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamsUserActivity implements AnalyticsHandler. Per-user Teams metrics from
// the latest activity upload, or a specific one via file_id.
func (h *AnalyticsHandlerImpl) TeamsUserActivity(w http.ResponseWriter, r *http.Request) {
	teamsFileID, err := optionalFileID(r, "file_id")
	if err != nil {
		response.BadRequest(w, "Invalid file_id", nil)
		return
	}
	employeeFileID, err := optionalFileID(r, "employee_file_id")
	if err != nil {
		response.BadRequest(w, "Invalid employee_file_id", nil)
		return
	}

	result, err := h.analyticsService.TeamsUserActivity(r.Context(), teamsFileID, employeeFileID)
	if err != nil {
		slog.Error("Teams activity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
