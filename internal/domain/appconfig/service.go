package appconfig

import "context"

// ConfigService exposes typed access over the key-value store. Missing keys
// resolve to zero-valued defaults rather than errors so the dashboard can
// render before anything is configured.
type ConfigService interface {
	GetCTC(ctx context.Context) (CTCConfig, error)
	SetCTC(ctx context.Context, cfg CTCConfig) error
	Get(ctx context.Context, key string) (Setting, error)
	Set(ctx context.Context, key string, value map[string]interface{}) (Setting, error)
}
