// Package config handles the workspace-level configuration: paths to the
// shared template catalog and recents registry, plus defaults applied to
// newly created projects. Per-project preferences live inside the project
// file itself, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the workspace configuration, stored as YAML.
type Config struct {
	// CompanyName seeds the settings block of new projects.
	CompanyName string `yaml:"company_name"`

	// Accent is an optional accent color for terminal output, as an ANSI
	// code ("0" to "255") or hex ("#RRGGBB"). Empty uses the built-in accent.
	Accent string `yaml:"accent"`

	// AutosaveMinutes seeds the autosave interval of new projects.
	AutosaveMinutes int `yaml:"autosave_minutes"`

	// TemplatesPath locates the shared template catalog file.
	TemplatesPath string `yaml:"templates_path"`

	// RecentsPath locates the recent-projects database.
	RecentsPath string `yaml:"recents_path"`

	// AutosaveDir holds autosave fallbacks for projects that have never
	// been saved to an explicit path.
	AutosaveDir string `yaml:"autosave_dir"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	dir := DataDir()
	return &Config{
		CompanyName:     "AutoMate Controls",
		AutosaveMinutes: 10,
		TemplatesPath:   filepath.Join(dir, "templates.json"),
		RecentsPath:     filepath.Join(dir, "recents.db"),
		AutosaveDir:     filepath.Join(dir, "autosave"),
	}
}

// Load reads the configuration from the default location, returning
// defaults when the file does not exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific path. Fields absent from
// the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the default location, creating the
// directory if needed.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DataDir returns the directory for workspace state. Overridable through
// BASSTUDIO_HOME, which tests and portable installs rely on.
func DataDir() string {
	if home := os.Getenv("BASSTUDIO_HOME"); home != "" {
		return home
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "basstudio")
	}
	return "."
}
