package appconfig

import "time"

// Setting is one key-value configuration entry. Values are stored as JSONB so
// a key can hold a scalar or a nested object.
type Setting struct {
	Key       string                 `json:"key"`
	Value     map[string]interface{} `json:"value"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// KeyCTC holds the work-hour cost configuration.
const KeyCTC = "ctc_per_hour"

// CTCConfig prices lost work hours: a global default rate plus optional
// per-function overrides.
type CTCConfig struct {
	DefaultPerHour float64            `json:"default_per_hour"`
	PerFunction    map[string]float64 `json:"per_function"`
}
