package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/role"
)

type RoleServiceImpl struct {
	role.RoleRepository
}

func NewRoleService(roleRepository role.RoleRepository) role.RoleService {
	return &RoleServiceImpl{RoleRepository: roleRepository}
}

// Create implements role.RoleService.
func (s *RoleServiceImpl) Create(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}
	if _, err := s.RoleRepository.GetByName(ctx, req.Name); err == nil {
		return role.RoleResponse{}, role.ErrRoleExists
	} else if !errors.Is(err, role.ErrRoleNotFound) {
		return role.RoleResponse{}, err
	}

	created, err := s.RoleRepository.Create(ctx, role.Role{Name: req.Name, Permissions: req.Permissions})
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(created), nil
}

// Get implements role.RoleService.
func (s *RoleServiceImpl) Get(ctx context.Context, id int64) (role.RoleResponse, error) {
	found, err := s.RoleRepository.GetByID(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(found), nil
}

// List implements role.RoleService. Default roles are seeded first so a fresh
// install always lists something meaningful.
func (s *RoleServiceImpl) List(ctx context.Context) ([]role.RoleResponse, error) {
	if err := s.ensureDefaults(ctx); err != nil {
		return nil, err
	}
	roles, err := s.RoleRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, role.ToResponse(r))
	}
	return out, nil
}

// Update implements role.RoleService.
func (s *RoleServiceImpl) Update(ctx context.Context, id int64, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	existing, err := s.RoleRepository.GetByID(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Permissions != nil {
		existing.Permissions = *req.Permissions
	}
	if err := s.RoleRepository.Update(ctx, existing); err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(existing), nil
}

// Delete implements role.RoleService. A role still assigned to users stays.
func (s *RoleServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.RoleRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.RoleRepository.CountUsersWithRole(ctx, existing.Name)
	if err != nil {
		return fmt.Errorf("failed to count role usage: %w", err)
	}
	if count > 0 {
		return role.ErrRoleInUse
	}
	return s.RoleRepository.Delete(ctx, id)
}

// PermissionsForRole implements role.RoleService.
func (s *RoleServiceImpl) PermissionsForRole(ctx context.Context, name string) (map[string]interface{}, error) {
	found, err := s.RoleRepository.GetByName(ctx, name)
	if err == nil {
		if found.Permissions == nil {
			return map[string]interface{}{}, nil
		}
		return found.Permissions, nil
	}
	if !errors.Is(err, role.ErrRoleNotFound) {
		return nil, err
	}

	if err := s.ensureDefaults(ctx); err != nil {
		return nil, err
	}
	found, err = s.RoleRepository.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return found.Permissions, nil
}

func (s *RoleServiceImpl) ensureDefaults(ctx context.Context) error {
	for _, def := range role.DefaultRoles() {
		_, err := s.RoleRepository.GetByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, role.ErrRoleNotFound) {
			return err
		}
		if _, err := s.RoleRepository.Create(ctx, def); err != nil {
			return fmt.Errorf("failed to seed default role %q: %w", def.Name, err)
		}
	}
	return nil
}
