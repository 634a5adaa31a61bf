package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	BillablePercentage float64 `toml:"billable_percentage"`
	HoursPerDay        int     `toml:"hours_per_day"`

	// DaysPerMonth overrides the working-day calendar per "YYYY-MM" key,
	// either a plain count or a comma-separated list of days of the month.
	DaysPerMonth map[string]string `toml:"days_per_month"`

	Connectors map[string]ConnectorConfig `toml:"connectors"`

	path string
}

type ConnectorConfig struct {
	Type      string `toml:"type"`
	BaseURL   string `toml:"base_url"`
	BrowseURL string `toml:"browse_url"`
	Token     string `toml:"token"`

	// CacheTTLSeconds bounds how long ticket details are served from the
	// in-memory cache. Zero disables caching.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

func DefaultConfig() Config {
	return Config{
		BillablePercentage: 0.8,
		HoursPerDay:        8,
		DaysPerMonth:       map[string]string{},
		Connectors:         map[string]ConnectorConfig{},
	}
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("TALLY_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tally"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DBPath returns the ledger database location, TALLY_DB overriding the
// default next to the config file.
func DBPath() (string, error) {
	if path := os.Getenv("TALLY_DB"); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tally.db"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("TALLY_TOKEN"); token != "" {
		for id, c := range cfg.Connectors {
			if c.Token == "" {
				c.Token = token
				cfg.Connectors[id] = c
			}
		}
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DaysOverride returns the working-day override stored for a "YYYY-MM" key.
func (c *Config) DaysOverride(month string) (string, bool) {
	v, ok := c.DaysPerMonth[month]
	return v, ok
}

// SetDaysOverride persists a working-day override using a read-modify-write
// of the config file so other settings survive untouched.
func (c *Config) SetDaysOverride(month, value string) error {
	raw := make(map[string]any)

	data, err := os.ReadFile(c.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	days, ok := raw["days_per_month"].(map[string]any)
	if !ok {
		days = make(map[string]any)
	}
	days[month] = value
	raw["days_per_month"] = days

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	out, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.path, out, 0644); err != nil {
		return err
	}

	if c.DaysPerMonth == nil {
		c.DaysPerMonth = map[string]string{}
	}
	c.DaysPerMonth[month] = value
	return nil
}
