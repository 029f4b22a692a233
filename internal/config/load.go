package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the config from defaults, then the first config file found,
// then command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate, or "".
func findConfigFile() string {
	candidates := []string{
		"./figurine.yaml",
		"./config.yaml",
		UserPath(),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Figurine")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Figurine")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "figurine")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "figurine")
	}
}

// loadFromFile merges the YAML file at path over cfg. Unknown keys are an
// error. Lists and the key bindings replace their defaults; every other
// value merges field by field.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override struct {
		Input struct {
			Bindings map[string]string `yaml:"bindings"`
		} `yaml:"input"`
	}
	if yaml.Unmarshal(data, &override) == nil && override.Input.Bindings != nil {
		cfg.Input.Bindings = nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
