package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrUsernameExists         = errors.New("username already taken")
	ErrRoleNotFound           = errors.New("role not found")
	ErrCannotDeleteSelf       = errors.New("cannot delete your own account")
	ErrCannotDeleteAdmin      = errors.New("cannot delete admin users")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
