package role

import "context"

type RoleService interface {
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	Get(ctx context.Context, id int64) (RoleResponse, error)
	List(ctx context.Context) ([]RoleResponse, error)
	Update(ctx context.Context, id int64, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, id int64) error

	// PermissionsForRole resolves the permission document for a role name,
	// seeding defaults on first use. Admin is handled by callers.
	PermissionsForRole(ctx context.Context, name string) (map[string]interface{}, error)
}
