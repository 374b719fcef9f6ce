package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/middleware"
	"github.com/confidence-group/hr-analytics-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	MyScope(w http.ResponseWriter, r *http.Request)
	SyncRoles(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", created)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	found, err := h.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	var updateReq user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.userService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Update user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	currentUserID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id, currentUserID); err != nil {
		slog.Error("Delete user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// Me implements UserHandler. The current user's own profile.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// MyScope implements UserHandler.
func (h *UserHandlerImpl) MyScope(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	scope, err := h.userService.MyScope(r.Context(), userID)
	if err != nil {
		slog.Error("MyScope service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, scope)
}

// SyncRoles implements UserHandler.
func (h *UserHandlerImpl) SyncRoles(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.SyncRolesFromHierarchy(r.Context())
	if err != nil {
		slog.Error("SyncRoles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Roles synced from hierarchy", "updated", result.Updated, "skipped", result.Skipped)
	response.SuccessWithMessage(w, "Roles synced from hierarchy", result)
}
