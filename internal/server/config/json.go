package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/flagx"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "24h" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabasePath          string         `json:"database_path"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	DailyShakeLimit       int            `json:"daily_shake_limit"`
}

// parseJson overlays Config with values from a JSON file selected via the
// -c or -config flag; with no such flag nothing is loaded. Read or
// unmarshal errors panic. Zero-valued JSON fields keep the defaults.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.DailyShakeLimit != 0 {
		config.DailyShakeLimit = c.DailyShakeLimit
	}
}
