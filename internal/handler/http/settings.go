package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/confidence-group/hr-analytics-go/internal/domain/appconfig"
	"github.com/confidence-group/hr-analytics-go/internal/domain/cxo"
	"github.com/confidence-group/hr-analytics-go/internal/domain/license"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SettingsHandler groups the small administrative surfaces: CTC rates, the
// CXO annotation list and the Teams license counters.
type SettingsHandler interface {
	GetCTC(w http.ResponseWriter, r *http.Request)
	SetCTC(w http.ResponseWriter, r *http.Request)

	ListCXO(w http.ResponseWriter, r *http.Request)
	AddCXO(w http.ResponseWriter, r *http.Request)
	RemoveCXO(w http.ResponseWriter, r *http.Request)

	GetLicense(w http.ResponseWriter, r *http.Request)
	UpdateLicense(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	configService  appconfig.ConfigService
	cxoService     cxo.CXOService
	licenseService license.LicenseService
}

func NewSettingsHandler(configService appconfig.ConfigService, cxoService cxo.CXOService, licenseService license.LicenseService) SettingsHandler {
	return &SettingsHandlerImpl{
		configService:  configService,
		cxoService:     cxoService,
		licenseService: licenseService,
	}
}

// GetCTC implements SettingsHandler.
func (h *SettingsHandlerImpl) GetCTC(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.GetCTC(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, cfg)
}

// SetCTC implements SettingsHandler.
func (h *SettingsHandlerImpl) SetCTC(w http.ResponseWriter, r *http.Request) {
	var cfg appconfig.CTCConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		slog.Error("SetCTC decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.configService.SetCTC(r.Context(), cfg); err != nil {
		slog.Error("SetCTC service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "CTC configuration updated", cfg)
}

// ListCXO implements SettingsHandler.
func (h *SettingsHandlerImpl) ListCXO(w http.ResponseWriter, r *http.Request) {
	entries, err := h.cxoService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// AddCXO implements SettingsHandler.
func (h *SettingsHandlerImpl) AddCXO(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("AddCXO decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.cxoService.Add(r.Context(), body.Email, body.Name, body.Title)
	if err != nil {
		slog.Error("AddCXO service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "CXO entry added", entry)
}

// RemoveCXO implements SettingsHandler.
func (h *SettingsHandlerImpl) RemoveCXO(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid cxo id", nil)
		return
	}

	if err := h.cxoService.Remove(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "CXO entry removed", nil)
}

// GetLicense implements SettingsHandler.
func (h *SettingsHandlerImpl) GetLicense(w http.ResponseWriter, r *http.Request) {
	l, err := h.licenseService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, l)
}

// UpdateLicense implements SettingsHandler.
func (h *SettingsHandlerImpl) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	var l license.License
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		slog.Error("UpdateLicense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.licenseService.Update(r.Context(), l)
	if err != nil {
		slog.Error("UpdateLicense service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License counters updated", updated)
}
