package license

import "context"

type LicenseRepository interface {
	// Get returns the singleton row, or a zero-valued License when none has
	// been written yet.
	Get(ctx context.Context) (License, error)
	// Upsert replaces the singleton row.
	Upsert(ctx context.Context, l License) error
}
