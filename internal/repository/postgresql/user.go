package postgresql

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, username, password_hash, full_name, role, is_active,
	   employee_email, data_scope_level,
	   allowed_functions, allowed_departments, allowed_companies,
	   phone, department, position,
	   oauth_provider, oauth_provider_id,
	   last_login, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.IsActive,
		&u.EmployeeEmail,
		&u.DataScopeLevel,
		&u.AllowedFunctions,
		&u.AllowedDepartments,
		&u.AllowedCompanies,
		&u.Phone,
		&u.Department,
		&u.Position,
		&u.OAuthProvider,
		&u.OAuthProviderID,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, username, password_hash, full_name, role, is_active,
			employee_email, data_scope_level,
			allowed_functions, allowed_departments, allowed_companies,
			phone, department, position,
			oauth_provider, oauth_provider_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.Email,
		newUser.Username,
		newUser.PasswordHash,
		newUser.FullName,
		newUser.Role,
		newUser.IsActive,
		newUser.EmployeeEmail,
		newUser.DataScopeLevel,
		newUser.AllowedFunctions,
		newUser.AllowedDepartments,
		newUser.AllowedCompanies,
		newUser.Phone,
		newUser.Department,
		newUser.Position,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return found, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	found, err := scanUser(q.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return found, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $1, username = $2, password_hash = $3, full_name = $4,
			role = $5, is_active = $6,
			employee_email = $7, data_scope_level = $8,
			allowed_functions = $9, allowed_departments = $10, allowed_companies = $11,
			phone = $12, department = $13, position = $14,
			updated_at = NOW()
		WHERE id = $15
	`

	tag, err := q.Exec(ctx, query,
		u.Email,
		u.Username,
		u.PasswordHash,
		u.FullName,
		u.Role,
		u.IsActive,
		u.EmployeeEmail,
		u.DataScopeLevel,
		u.AllowedFunctions,
		u.AllowedDepartments,
		u.AllowedCompanies,
		u.Phone,
		u.Department,
		u.Position,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", u.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateScope implements user.UserRepository.
func (r *userRepositoryImpl) UpdateScope(ctx context.Context, id int64, role string, dataScopeLevel *string, allowedFunctions, allowedDepartments, allowedCompanies []string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET role = $1, data_scope_level = $2,
			allowed_functions = $3, allowed_departments = $4, allowed_companies = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, role, dataScopeLevel, allowedFunctions, allowedDepartments, allowedCompanies, id)
	if err != nil {
		return fmt.Errorf("failed to update scope for user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last login for user %d: %w", id, err)
	}

	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
