package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserPath returns the config file location inside ConfigDir.
func UserPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to UserPath.
func (c *Config) Save() error {
	return c.SaveTo(UserPath())
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
