package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/confidence-group/hr-analytics-go/internal/domain/role"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	role.RoleService
	hierarchy.HierarchyService
}

func NewUserService(userRepository user.UserRepository, roleService role.RoleService, hierarchyService hierarchy.HierarchyService) user.UserService {
	return &UserServiceImpl{
		UserRepository:   userRepository,
		RoleService:      roleService,
		HierarchyService: hierarchyService,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}
	if _, err := s.UserRepository.GetByUsername(ctx, req.Username); err == nil {
		return user.UserResponse{}, user.ErrUsernameExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	roleName := strings.TrimSpace(req.Role)
	if roleName == "" {
		roleName = user.RoleDefault
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Username:           strings.TrimSpace(req.Username),
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Role:               roleName,
		IsActive:           true,
		EmployeeEmail:      req.EmployeeEmail,
		DataScopeLevel:     req.DataScopeLevel,
		AllowedFunctions:   req.AllowedFuncs,
		AllowedDepartments: req.AllowedDepts,
		AllowedCompanies:   req.AllowedComps,
		Phone:              req.Phone,
		Department:         req.Department,
		Position:           req.Position,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(created), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	resp := user.ToResponse(found)
	s.attachPermissions(ctx, &resp)
	return resp, nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp := user.ToResponse(u)
		s.attachPermissions(ctx, &resp)
		out = append(out, resp)
	}
	return out, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		existing.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Username != nil {
		existing.Username = strings.TrimSpace(*req.Username)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}
	if req.FullName != nil {
		existing.FullName = req.FullName
	}
	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.EmployeeEmail != nil {
		existing.EmployeeEmail = req.EmployeeEmail
	}
	if req.DataScopeLevel != nil {
		existing.DataScopeLevel = req.DataScopeLevel
	}
	if req.AllowedFuncs != nil {
		existing.AllowedFunctions = *req.AllowedFuncs
	}
	if req.AllowedDepts != nil {
		existing.AllowedDepartments = *req.AllowedDepts
	}
	if req.AllowedComps != nil {
		existing.AllowedCompanies = *req.AllowedComps
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Department != nil {
		existing.Department = req.Department
	}
	if req.Position != nil {
		existing.Position = req.Position
	}

	if err := s.UserRepository.Update(ctx, existing); err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(existing), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id int64, currentUserID int64) error {
	if id == currentUserID {
		return user.ErrCannotDeleteSelf
	}
	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return user.ErrCannotDeleteAdmin
	}
	return s.UserRepository.Delete(ctx, id)
}

// MyScope implements user.UserService.
func (s *UserServiceImpl) MyScope(ctx context.Context, userID int64) (user.MyScopeResponse, error) {
	caller, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.MyScopeResponse{}, err
	}

	scope, err := s.HierarchyService.EffectiveScope(ctx, caller.ScopeViewer())
	if err != nil {
		return user.MyScopeResponse{}, err
	}

	tabs, err := s.visibleTabs(ctx, caller)
	if err != nil {
		return user.MyScopeResponse{}, err
	}

	return user.MyScopeResponse{Scope: scope, VisibleTabs: tabs}, nil
}

// visibleTabs lists the dashboard modules the user's role enables. Admin sees
// every module without consulting the role table.
func (s *UserServiceImpl) visibleTabs(ctx context.Context, u user.User) ([]string, error) {
	if u.IsAdmin() {
		return []string{"attendance_dashboard", "teams_dashboard"}, nil
	}

	perms, err := s.RoleService.PermissionsForRole(ctx, u.Role)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	tabs := make([]string, 0, len(perms))
	for module, raw := range perms {
		doc, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if enabled, ok := doc["enabled"].(bool); ok && enabled {
			tabs = append(tabs, module)
		}
	}
	sort.Strings(tabs)
	return tabs, nil
}

// SyncRolesFromHierarchy implements user.UserService.
func (s *UserServiceImpl) SyncRolesFromHierarchy(ctx context.Context) (user.SyncRolesResult, error) {
	m, err := s.HierarchyService.BuildMap(ctx, nil)
	if err != nil {
		return user.SyncRolesResult{}, err
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return user.SyncRolesResult{}, err
	}

	result := user.SyncRolesResult{Details: []user.SyncDetail{}}
	for _, u := range users {
		if u.IsAdmin() {
			result.Skipped++
			result.Details = append(result.Details, user.SyncDetail{UserID: u.ID, Email: u.Email, Reason: "admin"})
			continue
		}
		email := strings.ToLower(strings.TrimSpace(u.EmployeeEmailOrEmpty()))
		if email == "" {
			result.Skipped++
			result.Details = append(result.Details, user.SyncDetail{UserID: u.ID, Email: u.Email, Reason: "no employee link"})
			continue
		}
		emp, ok := m[email]
		if !ok {
			result.Skipped++
			result.Details = append(result.Details, user.SyncDetail{UserID: u.ID, Email: u.Email, Reason: "not in roster"})
			continue
		}

		level := emp.Level
		persisted := m.ScopeToPersist(email, level)
		roleName := roleForLevel(level)

		if err := s.UserRepository.UpdateScope(ctx, u.ID, roleName, &level,
			persisted.AllowedFunctions, persisted.AllowedDepartments, persisted.AllowedCompanies); err != nil {
			return user.SyncRolesResult{}, fmt.Errorf("failed to sync user %d: %w", u.ID, err)
		}
		result.Updated++
		result.Details = append(result.Details, user.SyncDetail{UserID: u.ID, Email: u.Email, Level: level})
	}

	return result, nil
}

// roleForLevel maps hierarchy depth to a role name: the top two levels manage,
// everyone else is a plain user.
func roleForLevel(level string) string {
	if depth := hierarchy.LevelDepth(level); depth >= 0 && depth <= 1 {
		return "manager"
	}
	return user.RoleDefault
}

func (s *UserServiceImpl) attachPermissions(ctx context.Context, resp *user.UserResponse) {
	perms, err := s.RoleService.PermissionsForRole(ctx, resp.Role)
	if err == nil {
		resp.Permissions = perms
	}
}
