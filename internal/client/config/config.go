package config

import "time"

// Config holds runtime settings for the SmartDrive CLI.
//
// Fields:
//   - ServerURL: base URL of the SmartDrive HTTP API.
//   - TokenDir: directory where the access token is kept between runs.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerURL      string
	TokenDir       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.TokenDir = ".smartdrive"
	c.RequestTimeout = 10 * time.Second
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
