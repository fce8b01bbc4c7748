package reuse

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds reuse buffer configuration parameters.
type Config struct {
	// Capacity is the number of entries the reuse buffer holds.
	// Default: 1024 entries.
	Capacity int `json:"capacity"`

	// MaxResults is the largest number of destination registers an
	// instruction may have and still be recorded. Default: 2.
	MaxResults int `json:"max_results"`
}

// DefaultConfig returns a Config with the default buffer geometry.
func DefaultConfig() *Config {
	return &Config{
		Capacity:   1024,
		MaxResults: 2,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reuse config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse reuse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize reuse config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write reuse config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable buffer.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must be >= 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
