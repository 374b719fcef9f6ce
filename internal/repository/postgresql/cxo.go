package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/cxo"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type cxoRepositoryImpl struct {
	db *database.DB
}

func NewCXORepository(db *database.DB) cxo.CXORepository {
	return &cxoRepositoryImpl{db: db}
}

// Create implements cxo.CXORepository.
func (r *cxoRepositoryImpl) Create(ctx context.Context, entry *cxo.CXO) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cxo_list (email, name, title)
		VALUES (LOWER($1), $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, entry.Email, entry.Name, entry.Title).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return cxo.ErrDuplicate
		}
		return fmt.Errorf("failed to create cxo entry: %w", err)
	}

	return nil
}

// List implements cxo.CXORepository.
func (r *cxoRepositoryImpl) List(ctx context.Context) ([]cxo.CXO, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, email, name, title, created_at FROM cxo_list ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cxo entries: %w", err)
	}
	defer rows.Close()

	var entries []cxo.CXO
	for rows.Next() {
		var e cxo.CXO
		if err := rows.Scan(&e.ID, &e.Email, &e.Name, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cxo row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cxo rows: %w", err)
	}

	return entries, nil
}

// GetByEmail implements cxo.CXORepository.
func (r *cxoRepositoryImpl) GetByEmail(ctx context.Context, email string) (cxo.CXO, error) {
	q := GetQuerier(ctx, r.db)

	var e cxo.CXO
	err := q.QueryRow(ctx, `SELECT id, email, name, title, created_at FROM cxo_list WHERE email = LOWER($1)`, email).
		Scan(&e.ID, &e.Email, &e.Name, &e.Title, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return cxo.CXO{}, cxo.ErrNotFound
		}
		return cxo.CXO{}, fmt.Errorf("failed to get cxo entry: %w", err)
	}

	return e, nil
}

// Delete implements cxo.CXORepository.
func (r *cxoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM cxo_list WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cxo entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return cxo.ErrNotFound
	}

	return nil
}
