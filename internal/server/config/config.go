// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the shake tracker server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabasePath: path of the sqlite database file.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     secret is generated at startup, which invalidates tokens on restart.
//   - TokenValidityDuration: access token lifetime.
//   - DailyShakeLimit: maximum shakes accepted per user per calendar day.
type Config struct {
	EndpointAddr          string
	DatabasePath          string
	SecretKey             string
	TokenValidityDuration time.Duration
	DailyShakeLimit       int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabasePath = "shaketracker-server.db"
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.DailyShakeLimit = 5
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
