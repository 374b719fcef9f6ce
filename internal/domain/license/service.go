package license

import "context"

type LicenseService interface {
	Get(ctx context.Context) (License, error)
	Update(ctx context.Context, l License) (License, error)
}
