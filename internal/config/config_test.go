// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Note: tests touching the path override mutate package state and therefore
// do not run in parallel.

func withConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName+"."+ConfigFileExt)
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	SetConfigFilePathOverride(path)
	t.Cleanup(func() { SetConfigFilePathOverride("") })
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	withConfigFile(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing config file must not fail: %v", err)
	}
	if cfg.SSHDConfigPath != DefaultSSHDConfigPath {
		t.Errorf("SSHDConfigPath = %q", cfg.SSHDConfigPath)
	}
	if cfg.LVMUnit != "m" {
		t.Errorf("LVMUnit = %q", cfg.LVMUnit)
	}
	if cfg.Output.Format != FormatJSON || !cfg.Output.Indent {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	withConfigFile(t, `
sshd_config_path = "/srv/ssh/sshd_config"
lvm_unit = "g"

[output]
format = "text"
verbose = true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SSHDConfigPath != "/srv/ssh/sshd_config" {
		t.Errorf("SSHDConfigPath = %q", cfg.SSHDConfigPath)
	}
	if cfg.LVMUnit != "g" {
		t.Errorf("LVMUnit = %q", cfg.LVMUnit)
	}
	if cfg.Output.Format != FormatText || !cfg.Output.Verbose {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad_InvalidFormatRejected(t *testing.T) {
	withConfigFile(t, `
[output]
format = "yaml"
`)

	cfg, err := Load()
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("err = %v, want ErrInvalidOutputFormat", err)
	}
	// Defaults still returned so the caller can continue with a warning.
	if cfg == nil || cfg.Output.Format != FormatJSON {
		t.Errorf("cfg = %+v, want defaults on validation failure", cfg)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	withConfigFile(t, "not [valid toml")

	if _, err := Load(); err == nil {
		t.Fatal("malformed config file must surface an error")
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "sshd_config_path") || !strings.Contains(content, "[output]") {
		t.Errorf("default config content:\n%s", content)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault must refuse to overwrite an existing file")
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format OutputFormat
		want   bool
	}{
		{FormatJSON, true},
		{FormatText, true},
		{"", false},
		{"JSON", false},
		{"yaml", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("OutputFormat(%q).IsValid() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}
