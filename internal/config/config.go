// Package config reads and writes the user-level fdb configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DefaultStore is used when neither --store nor FDB_STORE is set.
	DefaultStore string `yaml:"default_store,omitempty"`

	// ThumbSize is the bounding box for generated thumbnails in
	// pixels. Zero means the built-in default.
	ThumbSize int `yaml:"thumb_size,omitempty"`

	// Ignore lists file name patterns (filepath.Match globs) skipped
	// during ingestion, in addition to dotfiles.
	Ignore []string `yaml:"ignore,omitempty"`
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "fdb", "config.yaml"), nil
}

// Load reads the config file at path, or the default location when
// path is empty. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, or the default location when path is
// empty, creating the directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Ignored reports whether name matches any configured ignore pattern.
func (c Config) Ignored(name string) bool {
	for _, pattern := range c.Ignore {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
