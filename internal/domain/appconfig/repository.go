package appconfig

import "context"

type ConfigRepository interface {
	Get(ctx context.Context, key string) (Setting, error)
	// Set upserts the value for key.
	Set(ctx context.Context, key string, value map[string]interface{}) error
	List(ctx context.Context) ([]Setting, error)
}
