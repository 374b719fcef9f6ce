package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error

	// UpdateScope writes only the hierarchy-derived fields; used by the
	// sync-roles materialization pass.
	UpdateScope(ctx context.Context, id int64, role string, dataScopeLevel *string, allowedFunctions, allowedDepartments, allowedCompanies []string) error

	UpdateLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
