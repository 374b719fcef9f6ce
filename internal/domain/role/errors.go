package role

import "errors"

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role name already exists")
	ErrRoleInUse    = errors.New("role is assigned to users and cannot be deleted")
)
