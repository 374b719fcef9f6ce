package role

import (
	"time"

	"github.com/confidence-group/hr-analytics-go/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name        string                 `json:"name"`
	Permissions map[string]interface{} `json:"permissions"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRoleRequest struct {
	Name        *string                 `json:"name"`
	Permissions *map[string]interface{} `json:"permissions"`
}

type RoleResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Permissions map[string]interface{} `json:"permissions"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func ToResponse(r Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = map[string]interface{}{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
