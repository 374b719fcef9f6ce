package role

import "context"

type RoleRepository interface {
	Create(ctx context.Context, r Role) (Role, error)
	GetByID(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, r Role) error
	Delete(ctx context.Context, id int64) error
	CountUsersWithRole(ctx context.Context, name string) (int64, error)
}
