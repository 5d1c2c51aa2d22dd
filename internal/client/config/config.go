package config

import "time"

// Config holds runtime settings for the shake tracker CLI.
//
// Fields:
//   - BaseURL: base URL of the backend REST API.
//   - DatabasePath: path of the local sqlite database file.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - DailyShakeLimit: maximum qualifying shakes per local calendar day.
type Config struct {
	BaseURL             string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	DailyShakeLimit     int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "shaketracker.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.DailyShakeLimit = 5
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
