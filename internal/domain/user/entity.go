package user

import (
	"strings"
	"time"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
)

// RoleAdmin is special-cased everywhere: admins bypass scope filtering and
// role-permission lookups entirely.
const (
	RoleAdmin   = "admin"
	RoleDefault = "user"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	FullName     *string
	Role         string
	IsActive     bool

	// Data scope: link to the employee list by email; level N = all,
	// N-1 = own function and its departments, N-2+ = own department only.
	EmployeeEmail  *string
	DataScopeLevel *string

	// Explicit overrides. Non-empty lists take precedence over
	// hierarchy-derived scope.
	AllowedFunctions   []string
	AllowedDepartments []string
	AllowedCompanies   []string

	Phone      *string
	Department *string
	Position   *string

	OAuthProvider   *string
	OAuthProviderID *string

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if the user holds the special admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasScopeOverride reports whether any explicit allow-list is set.
func (u *User) HasScopeOverride() bool {
	return len(u.AllowedFunctions) > 0 || len(u.AllowedDepartments) > 0 || len(u.AllowedCompanies) > 0
}

// EmployeeEmailOrEmpty returns the linked roster email, trimmed.
func (u *User) EmployeeEmailOrEmpty() string {
	if u.EmployeeEmail == nil {
		return ""
	}
	return *u.EmployeeEmail
}

// DataScopeLevelOrEmpty returns the assigned hierarchy level, if any.
func (u *User) DataScopeLevelOrEmpty() string {
	if u.DataScopeLevel == nil {
		return ""
	}
	return *u.DataScopeLevel
}

// ScopeViewer projects the account into the caller shape the hierarchy
// package resolves scopes for.
func (u *User) ScopeViewer() hierarchy.Viewer {
	return hierarchy.Viewer{
		Admin:              u.IsAdmin(),
		EmployeeEmail:      strings.TrimSpace(u.EmployeeEmailOrEmpty()),
		DataScopeLevel:     strings.TrimSpace(u.DataScopeLevelOrEmpty()),
		AllowedFunctions:   u.AllowedFunctions,
		AllowedDepartments: u.AllowedDepartments,
		AllowedCompanies:   u.AllowedCompanies,
	}
}
