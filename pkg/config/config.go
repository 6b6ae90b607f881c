// Package config loads build-env settings. Settings come from built-in
// defaults, then the user file at $XDG_CONFIG_HOME/build-env/config.yaml,
// then .build-env.yaml in the project directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

// ErrInvalidConfig is returned when a config file has bad contents.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds build-env settings. Relative paths are relative to the
// project directory.
type Config struct {
	Template       string `yaml:"template,omitempty"`        // Default: .env.example
	LegacyTemplate string `yaml:"legacy_template,omitempty"` // Default: .env.json
	Output         string `yaml:"output,omitempty"`          // Default: .env
	DefaultsDir    string `yaml:"defaults_dir,omitempty"`    // Remembered defaults links
	Environment    string `yaml:"environment,omitempty"`     // Default target environment
	LogLevel       string `yaml:"log_level,omitempty"`       // debug, info, warn or error
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Template:       ".env.example",
		LegacyTemplate: ".env.json",
		Output:         ".env",
		DefaultsDir:    ".build-env",
		Environment:    string(environment.Local),
		LogLevel:       "info",
	}
}

// Load reads the user file and the project file for projectDir.
func Load(projectDir string) (*Config, error) {
	return LoadFrom(projectDir, findUserConfig())
}

// LoadFrom is Load with an explicit user config path. Missing files are
// skipped.
func LoadFrom(projectDir, userPath string) (*Config, error) {
	cfg := Default()

	for _, path := range []string{userPath, filepath.Join(projectDir, ProjectFileName)} {
		if path == "" {
			continue
		}
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile overlays the non-empty settings in path.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	overlay(&c.Template, file.Template)
	overlay(&c.LegacyTemplate, file.LegacyTemplate)
	overlay(&c.Output, file.Output)
	overlay(&c.DefaultsDir, file.DefaultsDir)
	overlay(&c.Environment, file.Environment)
	overlay(&c.LogLevel, file.LogLevel)

	return nil
}

func overlay(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// Validate checks the environment and log level.
func (c *Config) Validate() error {
	if _, err := environment.Parse(c.Environment); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q must be debug, info, warn or error", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// DefaultEnvironment returns the configured target environment.
func (c *Config) DefaultEnvironment() environment.Environment {
	env, err := environment.Parse(c.Environment)
	if err != nil {
		return environment.Local
	}
	return env
}

// Resolve returns path relative to projectDir unless it is absolute.
func Resolve(projectDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

// Save writes c as the project file in projectDir.
func (c *Config) Save(projectDir string) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(projectDir, ProjectFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// Marshal returns c as YAML.
func (c *Config) Marshal() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
