package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/confidence-group/hr-analytics-go/internal/domain/role"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RoleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	roleService role.RoleService
}

func NewRoleHandler(roleService role.RoleService) RoleHandler {
	return &RoleHandlerImpl{roleService: roleService}
}

// Create implements RoleHandler.
func (h *RoleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq role.CreateRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.roleService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create role service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", created)
}

// Get implements RoleHandler.
func (h *RoleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid role id", nil)
		return
	}

	found, err := h.roleService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements RoleHandler.
func (h *RoleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		slog.Error("List roles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

// Update implements RoleHandler.
func (h *RoleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid role id", nil)
		return
	}

	var updateReq role.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.roleService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Update role service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", updated)
}

// Delete implements RoleHandler.
func (h *RoleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid role id", nil)
		return
	}

	if err := h.roleService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete role service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}
