package appconfig

import (
	"context"
	"testing"
	"time"

	"github.com/confidence-group/hr-analytics-go/internal/domain/appconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigRepository struct {
	settings map[string]map[string]interface{}
}

func newFakeConfigRepository() *fakeConfigRepository {
	return &fakeConfigRepository{settings: map[string]map[string]interface{}{}}
}

func (f *fakeConfigRepository) Get(ctx context.Context, key string) (appconfig.Setting, error) {
	value, ok := f.settings[key]
	if !ok {
		return appconfig.Setting{}, appconfig.ErrSettingNotFound
	}
	return appconfig.Setting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func (f *fakeConfigRepository) Set(ctx context.Context, key string, value map[string]interface{}) error {
	f.settings[key] = value
	return nil
}

func (f *fakeConfigRepository) List(ctx context.Context) ([]appconfig.Setting, error) {
	out := make([]appconfig.Setting, 0, len(f.settings))
	for k, v := range f.settings {
		out = append(out, appconfig.Setting{Key: k, Value: v})
	}
	return out, nil
}

func TestGetCTCUnsetReturnsZeroConfig(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepository())

	cfg, err := svc.GetCTC(context.Background())

	require.NoError(t, err)
	assert.Zero(t, cfg.DefaultPerHour)
	assert.Empty(t, cfg.PerFunction)
	assert.NotNil(t, cfg.PerFunction)
}

func TestSetCTCRoundTrip(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepository())

	err := svc.SetCTC(context.Background(), appconfig.CTCConfig{
		DefaultPerHour: 450,
		PerFunction: map[string]float64{
			"Sales & Marketing": 600,
			"Operations":        380.5,
		},
	})
	require.NoError(t, err)

	cfg, err := svc.GetCTC(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 450.0, cfg.DefaultPerHour)
	assert.Equal(t, 600.0, cfg.PerFunction["Sales & Marketing"])
	assert.Equal(t, 380.5, cfg.PerFunction["Operations"])
}

func TestSetCTCDropsBlankAndNegativeEntries(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepository())

	err := svc.SetCTC(context.Background(), appconfig.CTCConfig{
		DefaultPerHour: 100,
		PerFunction: map[string]float64{
			"  ":         500,
			"Operations": -1,
			"Sales":      250,
		},
	})
	require.NoError(t, err)

	cfg, err := svc.GetCTC(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Sales": 250}, cfg.PerFunction)
}

func TestSetCTCRejectsNegativeDefault(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepository())

	err := svc.SetCTC(context.Background(), appconfig.CTCConfig{DefaultPerHour: -5})

	assert.Error(t, err)
}

func TestDecodeCTCToleratesMalformedDocument(t *testing.T) {
	cfg := decodeCTC(map[string]interface{}{
		"default_per_hour": "not-a-number",
		"per_function": map[string]interface{}{
			"Sales": "bad",
			"Ops":   120.0,
		},
	})

	assert.Zero(t, cfg.DefaultPerHour)
	assert.Equal(t, map[string]float64{"Ops": 120}, cfg.PerFunction)
}

func TestSetRequiresKey(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepository())

	_, err := svc.Set(context.Background(), "  ", map[string]interface{}{"a": 1})

	assert.Error(t, err)
}
