// SPDX-License-Identifier: MPL-2.0

// Package config loads hostfacts tool configuration. Settings come from a
// TOML file in the platform config directory, overridable per-run through
// HOSTFACTS_* environment variables; anything unset falls back to defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "hostfacts"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"

	// FormatJSON prints facts as a JSON document.
	FormatJSON OutputFormat = "json"
	// FormatText prints facts as styled, human-readable text.
	FormatText OutputFormat = "text"

	// DefaultSSHDConfigPath is the root sshd configuration file.
	DefaultSSHDConfigPath = "/etc/ssh/sshd_config"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// configFilePathOverride allows tests and the --config flag to bypass
	// the platform config directory.
	configFilePathOverride string
)

type (
	// OutputFormat selects how gathered facts are rendered.
	OutputFormat string

	// Config is the tool configuration.
	Config struct {
		// SSHDConfigPath is the root sshd config file for `hostfacts sshd`.
		SSHDConfigPath string `mapstructure:"sshd_config_path" toml:"sshd_config_path"`
		// LVMUnit is the default LVM size unit for `hostfacts lvm`.
		LVMUnit string `mapstructure:"lvm_unit" toml:"lvm_unit"`
		// Output configures rendering.
		Output OutputConfig `mapstructure:"output" toml:"output"`
	}

	// OutputConfig configures fact rendering.
	OutputConfig struct {
		// Format is the output format (json or text).
		Format OutputFormat `mapstructure:"format" toml:"format"`
		// Indent enables indented JSON output.
		Indent bool `mapstructure:"indent" toml:"indent"`
		// Verbose enables diagnostic output on stderr.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}
)

// IsValid reports whether the output format is recognized.
func (f OutputFormat) IsValid() bool {
	return f == FormatJSON || f == FormatText
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SSHDConfigPath: DefaultSSHDConfigPath,
		LVMUnit:        "m",
		Output: OutputConfig{
			Format: FormatJSON,
			Indent: true,
		},
	}
}

// SetConfigFilePathOverride forces Load to read a specific config file.
// Used by the --config flag and by tests.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// ConfigDir returns the hostfacts configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the effective config file path, honoring any
// override set via SetConfigFilePathOverride.
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration. A missing config file is not an error;
// defaults plus environment overrides apply. A present but malformed file
// is surfaced as an error, with defaults returned so the caller can
// continue with a warning.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("sshd_config_path", defaults.SSHDConfigPath)
	v.SetDefault("lvm_unit", defaults.LVMUnit)
	v.SetDefault("output.format", string(defaults.Output.Format))
	v.SetDefault("output.indent", defaults.Output.Indent)
	v.SetDefault("output.verbose", defaults.Output.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := ConfigFilePath()
	if err != nil {
		return defaults, err
	}
	v.SetConfigFile(path)
	v.SetConfigType(ConfigFileExt)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return defaults, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return defaults, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return defaults, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if !c.Output.Format.IsValid() {
		return fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidOutputFormat, c.Output.Format, FormatJSON, FormatText)
	}
	return nil
}

// WriteDefault writes a default config file to path, creating parent
// directories as needed. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
