// Package config provides configuration management for XFCE Gala Settings.
// It handles loading, saving, and validating the application's own settings;
// the session config and preference store it edits live elsewhere.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/yllada/xfce-gala-settings/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// Backend selects the preference store: "dconf" or "gsettings".
	Backend string `yaml:"backend"`
	// TemplatePath is the system session config copied on first use.
	TemplatePath string `yaml:"template_path"`
	// ShowNotifications raises desktop notifications for failed applies.
	ShowNotifications bool `yaml:"show_notifications"`
	// ReconcileOnExit restarts the configured window manager at shutdown
	// when it changed during the session.
	ReconcileOnExit bool `yaml:"reconcile_on_exit"`
	// RecordHistory journals every change to the history database.
	RecordHistory bool `yaml:"record_history"`

	// readOnly marks defaults standing in for a file that could not be
	// read. Saving them would replace the user's file.
	readOnly bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend:           common.BackendDconf,
		TemplatePath:      common.DefaultTemplatePath,
		ShowNotifications: true,
		ReconcileOnExit:   true,
		RecordHistory:     true,
	}
}

// Path returns the location of the configuration file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, common.ConfigDirName, common.ConfigFileName)
}

// LoadOrDefault loads the configuration from the default location.
func LoadOrDefault() (*Config, error) {
	return LoadOrDefaultFrom(Path())
}

// LoadOrDefaultFrom loads the configuration from path. When the file
// exists but cannot be read it returns read-only defaults along with the
// error.
func LoadOrDefaultFrom(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if cfg != nil {
		return cfg, err
	}
	cfg = DefaultConfig()
	cfg.readOnly = true
	return cfg, err
}

// ReadOnly reports whether c stands in for a config file that could not
// be read. Save refuses to overwrite that file.
func (c *Config) ReadOnly() bool {
	return c.readOnly
}

// LoadFrom loads the configuration from path.
// If the file doesn't exist, it is created with default values.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := DefaultConfig()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", common.ErrConfigLoad, path, err)
	}

	cfg.validate()
	return cfg, nil
}

// validate replaces invalid values with their defaults.
func (c *Config) validate() {
	switch c.Backend {
	case common.BackendDconf, common.BackendGSettings:
	default:
		common.LogWarn("Unknown preference backend %q, using %s", c.Backend, common.BackendDconf)
		c.Backend = common.BackendDconf
	}
	if c.TemplatePath == "" {
		c.TemplatePath = common.DefaultTemplatePath
	}
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(path string) error {
	if c.readOnly {
		return fmt.Errorf("%w: %s could not be read, fix it by hand first", common.ErrConfigSave, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: creating config directory: %w", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, err)
	}
	return nil
}
