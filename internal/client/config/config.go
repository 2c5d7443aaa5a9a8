// Package config holds runtime settings for the notes CLI.
package config

type Config struct {
	ServerAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}
