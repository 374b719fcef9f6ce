package user

import (
	"context"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
)

// UserService covers admin user management plus the scope surface exposed to
// the current user.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id int64) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id int64, currentUserID int64) error

	// MyScope resolves the current user's effective visibility scope plus the
	// dashboard tabs their role permissions expose.
	MyScope(ctx context.Context, userID int64) (MyScopeResponse, error)

	// SyncRolesFromHierarchy recomputes role, data_scope_level and allowed_*
	// for every non-admin user from the current hierarchy and writes the
	// result back. Explicit materialization, separate from on-the-fly
	// resolution.
	SyncRolesFromHierarchy(ctx context.Context) (SyncRolesResult, error)
}

type MyScopeResponse struct {
	Scope       hierarchy.Scope `json:"scope"`
	VisibleTabs []string        `json:"visible_tabs"`
}
