package appconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/appconfig"
)

type ConfigServiceImpl struct {
	appconfig.ConfigRepository
}

func NewConfigService(configRepository appconfig.ConfigRepository) appconfig.ConfigService {
	return &ConfigServiceImpl{ConfigRepository: configRepository}
}

// GetCTC implements appconfig.ConfigService. An unset key yields a zero-rate
// config so the cost panels render as zeros instead of erroring.
func (s *ConfigServiceImpl) GetCTC(ctx context.Context) (appconfig.CTCConfig, error) {
	setting, err := s.ConfigRepository.Get(ctx, appconfig.KeyCTC)
	if err != nil {
		if errors.Is(err, appconfig.ErrSettingNotFound) {
			return appconfig.CTCConfig{PerFunction: map[string]float64{}}, nil
		}
		return appconfig.CTCConfig{}, err
	}
	return decodeCTC(setting.Value), nil
}

// SetCTC implements appconfig.ConfigService.
func (s *ConfigServiceImpl) SetCTC(ctx context.Context, cfg appconfig.CTCConfig) error {
	if cfg.DefaultPerHour < 0 {
		return fmt.Errorf("default_per_hour must not be negative")
	}
	perFunction := map[string]interface{}{}
	for fn, rate := range cfg.PerFunction {
		fn = strings.TrimSpace(fn)
		if fn == "" || rate < 0 {
			continue
		}
		perFunction[fn] = rate
	}
	return s.ConfigRepository.Set(ctx, appconfig.KeyCTC, map[string]interface{}{
		"default_per_hour": cfg.DefaultPerHour,
		"per_function":     perFunction,
	})
}

// Get implements appconfig.ConfigService.
func (s *ConfigServiceImpl) Get(ctx context.Context, key string) (appconfig.Setting, error) {
	return s.ConfigRepository.Get(ctx, key)
}

// Set implements appconfig.ConfigService.
func (s *ConfigServiceImpl) Set(ctx context.Context, key string, value map[string]interface{}) (appconfig.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return appconfig.Setting{}, fmt.Errorf("config key is required")
	}
	if err := s.ConfigRepository.Set(ctx, key, value); err != nil {
		return appconfig.Setting{}, err
	}
	return s.ConfigRepository.Get(ctx, key)
}

// decodeCTC tolerates partially-shaped documents; unknown fields are ignored
// and malformed rates drop to zero.
func decodeCTC(value map[string]interface{}) appconfig.CTCConfig {
	cfg := appconfig.CTCConfig{PerFunction: map[string]float64{}}
	if value == nil {
		return cfg
	}
	if v, ok := value["default_per_hour"].(float64); ok {
		cfg.DefaultPerHour = v
	}
	if raw, ok := value["per_function"].(map[string]interface{}); ok {
		for fn, rv := range raw {
			if rate, ok := rv.(float64); ok {
				cfg.PerFunction[fn] = rate
			}
		}
	}
	return cfg
}
