package postgresql

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/role"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, newRole role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		RETURNING id, name, permissions, created_at, updated_at
	`

	var created role.Role
	err := q.QueryRow(ctx, query, newRole.Name, newRole.Permissions).Scan(
		&created.ID,
		&created.Name,
		&created.Permissions,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return created, nil
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id int64) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE id = $1`

	var found role.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Permissions,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role %d: %w", id, err)
	}

	return found, nil
}

// GetByName implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByName(ctx context.Context, name string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE name = $1`

	var found role.Role
	err := q.QueryRow(ctx, query, name).Scan(
		&found.ID,
		&found.Name,
		&found.Permissions,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role %q: %w", name, err)
	}

	return found, nil
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	for rows.Next() {
		var item role.Role
		if err := rows.Scan(&item.ID, &item.Name, &item.Permissions, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate role rows: %w", err)
	}

	return roles, nil
}

// Update implements role.RoleRepository.
func (r *roleRepositoryImpl) Update(ctx context.Context, updated role.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE roles SET name = $1, permissions = $2, updated_at = NOW() WHERE id = $3`

	tag, err := q.Exec(ctx, query, updated.Name, updated.Permissions, updated.ID)
	if err != nil {
		return fmt.Errorf("failed to update role %d: %w", updated.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

// Delete implements role.RoleRepository.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

// CountUsersWithRole implements role.RoleRepository.
func (r *roleRepositoryImpl) CountUsersWithRole(ctx context.Context, name string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, name).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users with role %q: %w", name, err)
	}

	return count, nil
}
