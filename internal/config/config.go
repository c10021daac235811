package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is dodo's small tuning surface. The binding table itself is fixed;
// only counts, timings and feedback toggles are configurable.
type Config struct {
	Desktops struct {
		// Minimum is how many desktops are kept alive at startup, 1-10.
		Minimum int `yaml:"minimum"`
	} `yaml:"desktops"`
	Indicator struct {
		Enabled    bool `yaml:"enabled"`
		DurationMs int  `yaml:"duration_ms"`
	} `yaml:"indicator"`
	Notifications struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"notifications"`
}

// MaxDesktops is the highest desktop the fixed binding table can address.
const MaxDesktops = 10

func Default() *Config {
	cfg := &Config{}
	cfg.Desktops.Minimum = MaxDesktops
	cfg.Indicator.Enabled = true
	cfg.Indicator.DurationMs = 1500
	cfg.Notifications.Enabled = true
	return cfg
}

// Path returns the config file location, ~/.dodo/config.yaml.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dodo", "config.yaml")
	}
	return filepath.Join(home, ".dodo", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. A present but malformed file is an error; silently
// running with wrong hotkey timings is worse than failing loudly.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Desktops.Minimum < 1 || c.Desktops.Minimum > MaxDesktops {
		return fmt.Errorf("desktops.minimum must be in [1, %d], got %d", MaxDesktops, c.Desktops.Minimum)
	}
	if c.Indicator.DurationMs < 100 || c.Indicator.DurationMs > 10000 {
		return fmt.Errorf("indicator.duration_ms must be in [100, 10000], got %d", c.Indicator.DurationMs)
	}
	return nil
}

// IndicatorDuration returns the overlay lifetime as a duration.
func (c *Config) IndicatorDuration() time.Duration {
	return time.Duration(c.Indicator.DurationMs) * time.Millisecond
}
