package postgresql

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/appconfig"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type configRepositoryImpl struct {
	db *database.DB
}

func NewConfigRepository(db *database.DB) appconfig.ConfigRepository {
	return &configRepositoryImpl{db: db}
}

// Get implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) Get(ctx context.Context, key string) (appconfig.Setting, error) {
	q := GetQuerier(ctx, r.db)

	var s appconfig.Setting
	err := q.QueryRow(ctx, `SELECT key, value, updated_at FROM app_config WHERE key = $1`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return appconfig.Setting{}, appconfig.ErrSettingNotFound
		}
		return appconfig.Setting{}, fmt.Errorf("failed to get config %q: %w", key, err)
	}

	return s, nil
}

// Set implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) Set(ctx context.Context, key string, value map[string]interface{}) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO app_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}

	return nil
}

// List implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) List(ctx context.Context) ([]appconfig.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value, updated_at FROM app_config ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}
	defer rows.Close()

	var settings []appconfig.Setting
	for rows.Next() {
		var s appconfig.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate config rows: %w", err)
	}

	return settings, nil
}
