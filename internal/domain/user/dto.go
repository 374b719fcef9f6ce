package user

import (
	"time"

	"github.com/confidence-group/hr-analytics-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email          string   `json:"email"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	FullName       *string  `json:"full_name"`
	Role           string   `json:"role"`
	EmployeeEmail  *string  `json:"employee_email"`
	DataScopeLevel *string  `json:"data_scope_level"`
	AllowedFuncs   []string `json:"allowed_functions"`
	AllowedDepts   []string `json:"allowed_departments"`
	AllowedComps   []string `json:"allowed_companies"`
	Phone          *string  `json:"phone"`
	Department     *string  `json:"department"`
	Position       *string  `json:"position"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username is required"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if r.DataScopeLevel != nil && !validator.IsEmpty(*r.DataScopeLevel) && !validator.IsValidScopeLevel(*r.DataScopeLevel) {
		errs = append(errs, validator.ValidationError{Field: "data_scope_level", Message: "must be N or N-<depth>"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	Email          *string   `json:"email"`
	Username       *string   `json:"username"`
	Password       *string   `json:"password"`
	FullName       *string   `json:"full_name"`
	Role           *string   `json:"role"`
	IsActive       *bool     `json:"is_active"`
	EmployeeEmail  *string   `json:"employee_email"`
	DataScopeLevel *string   `json:"data_scope_level"`
	AllowedFuncs   *[]string `json:"allowed_functions"`
	AllowedDepts   *[]string `json:"allowed_departments"`
	AllowedComps   *[]string `json:"allowed_companies"`
	Phone          *string   `json:"phone"`
	Department     *string   `json:"department"`
	Position       *string   `json:"position"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if r.Username != nil && validator.IsEmpty(*r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must not be empty"})
	}
	if r.Password != nil && len(*r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if r.DataScopeLevel != nil && !validator.IsEmpty(*r.DataScopeLevel) && !validator.IsValidScopeLevel(*r.DataScopeLevel) {
		errs = append(errs, validator.ValidationError{Field: "data_scope_level", Message: "must be N or N-<depth>"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID                 int64                  `json:"id"`
	Email              string                 `json:"email"`
	Username           string                 `json:"username"`
	FullName           *string                `json:"full_name"`
	Role               string                 `json:"role"`
	IsActive           bool                   `json:"is_active"`
	EmployeeEmail      *string                `json:"employee_email"`
	DataScopeLevel     *string                `json:"data_scope_level"`
	AllowedFunctions   []string               `json:"allowed_functions"`
	AllowedDepartments []string               `json:"allowed_departments"`
	AllowedCompanies   []string               `json:"allowed_companies"`
	Phone              *string                `json:"phone"`
	Department         *string                `json:"department"`
	Position           *string                `json:"position"`
	Permissions        map[string]interface{} `json:"permissions,omitempty"`
	LastLogin          *time.Time             `json:"last_login"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		FullName:           u.FullName,
		Role:               u.Role,
		IsActive:           u.IsActive,
		EmployeeEmail:      u.EmployeeEmail,
		DataScopeLevel:     u.DataScopeLevel,
		AllowedFunctions:   emptyIfNil(u.AllowedFunctions),
		AllowedDepartments: emptyIfNil(u.AllowedDepartments),
		AllowedCompanies:   emptyIfNil(u.AllowedCompanies),
		Phone:              u.Phone,
		Department:         u.Department,
		Position:           u.Position,
		LastLogin:          u.LastLogin,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SyncRolesResult summarizes a sync-roles-from-hierarchy run.
type SyncRolesResult struct {
	Updated int          `json:"updated"`
	Skipped int          `json:"skipped"`
	Details []SyncDetail `json:"details"`
}

type SyncDetail struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Level  string `json:"level,omitempty"`
	Reason string `json:"reason,omitempty"`
}
