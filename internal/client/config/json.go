package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/flagx"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL             string         `json:"base_url"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DailyShakeLimit     int            `json:"daily_shake_limit"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag via
// flagx.JsonConfigFlags(); with no such flag nothing is loaded. Read or
// unmarshal errors panic, matching parseFlags. Zero-valued JSON fields do
// not overwrite defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.DailyShakeLimit != 0 {
		cfg.DailyShakeLimit = jc.DailyShakeLimit
	}
}
