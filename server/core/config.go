package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the dedicated server configuration, loadable from a YAML file
// with flag overrides applied on top.
type Config struct {
	Port       uint   `yaml:"port"`
	TickRate   int    `yaml:"tickRate"`
	Name       string `yaml:"name"`
	Version    string `yaml:"version"` // required client version, empty accepts any
	Arena      string `yaml:"arena"`
	MaxPlayers int    `yaml:"maxPlayers"`

	Master MasterConfig `yaml:"master"`
}

// MasterConfig controls optional registration with a master server.
type MasterConfig struct {
	URL     string `yaml:"url"` // empty disables registration
	Address string `yaml:"address"`
	Region  string `yaml:"region"`
}

// DefaultConfig returns the built-in server settings.
func DefaultConfig() *Config {
	return &Config{
		Port:       7373,
		TickRate:   20,
		Name:       "Kaboomer Server",
		Arena:      "courtyard",
		MaxPlayers: 8,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings after file load and flag overrides.
func (c *Config) Validate() error {
	// Movement integrates in fixed 60 Hz sub-steps, so the tick rate must
	// divide 60 or the simulation would run slow.
	if c.TickRate <= 0 || c.TickRate > 60 || 60%c.TickRate != 0 {
		return fmt.Errorf("tickRate must divide 60 (got %d)", c.TickRate)
	}
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("maxPlayers must be positive, got %d", c.MaxPlayers)
	}
	return nil
}
