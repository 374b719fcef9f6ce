package postgresql

import (
	"context"
	"fmt"

	"github.com/confidence-group/hr-analytics-go/internal/domain/license"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type licenseRepositoryImpl struct {
	db *database.DB
}

func NewLicenseRepository(db *database.DB) license.LicenseRepository {
	return &licenseRepositoryImpl{db: db}
}

// Get implements license.LicenseRepository. The table holds at most one row.
func (r *licenseRepositoryImpl) Get(ctx context.Context) (license.License, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT total, assigned, cost_per_license, per_company, updated_at
		FROM teams_license
		WHERE id = 1
	`

	var l license.License
	err := q.QueryRow(ctx, query).Scan(&l.Total, &l.Assigned, &l.CostPerLicense, &l.PerCompany, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			empty := license.License{}
			empty.Normalize()
			return empty, nil
		}
		return license.License{}, fmt.Errorf("failed to get teams license: %w", err)
	}

	l.Normalize()
	return l, nil
}

// Upsert implements license.LicenseRepository.
func (r *licenseRepositoryImpl) Upsert(ctx context.Context, l license.License) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO teams_license (id, total, assigned, cost_per_license, per_company, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET total = EXCLUDED.total,
			assigned = EXCLUDED.assigned,
			cost_per_license = EXCLUDED.cost_per_license,
			per_company = EXCLUDED.per_company,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, l.Total, l.Assigned, l.CostPerLicense, l.PerCompany); err != nil {
		return fmt.Errorf("failed to upsert teams license: %w", err)
	}

	return nil
}
