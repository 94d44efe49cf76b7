// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the collaboration CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP endpoint.
type Config struct {
	ServerAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
