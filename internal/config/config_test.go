// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/internal/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.ResponseFormat != ResponseFormatText {
		t.Errorf("expected default response format to be text, got %s", cfg.UI.ResponseFormat)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("expected default log level to be info, got %s", cfg.Log.Level)
	}
	if cfg.Log.File != "" {
		t.Errorf("expected no default log file, got %q", cfg.Log.File)
	}
	if cfg.EnvPrefix != DefaultEnvPrefix {
		t.Errorf("expected default env prefix %q, got %q", DefaultEnvPrefix, cfg.EnvPrefix)
	}
	if len(cfg.Definitions) != 0 {
		t.Errorf("expected no default definitions, got %v", cfg.Definitions)
	}
	if ok, errs := cfg.IsValid(); !ok {
		t.Errorf("default config is invalid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		dir := t.TempDir()
		SetConfigDirOverride(dir)
		defer Reset()

		got, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}
		if got != dir {
			t.Errorf("ConfigDir() = %q, want %q", got, dir)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME only applies on Linux")
		}
		t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

		got, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}
		if want := filepath.Join("/tmp/test-xdg-config", AppName); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestConfigDir_HomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("the ~/.config fallback only applies on Linux")
	}
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Setenv("XDG_CONFIG_HOME", "")

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "nested", AppName)
	SetConfigDirOverride(configDir)
	defer Reset()

	got, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}
	if got != configDir {
		t.Errorf("EnsureConfigDir() = %q, want %q", got, configDir)
	}
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected %s to be a directory (err=%v)", configDir, err)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config path, got %q", path)
	}
	if cfg.Log.Level != LogLevelInfo || cfg.UI.ResponseFormat != ResponseFormatText {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, `
ui: {
	verbose: true
	response_format: "json"
}
log: {
	level: "debug"
	max_backups: 7
}
env_prefix: "MYZOWE"
definitions: ["jobs.cue", "extra.yaml"]
`)

	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose to be true")
	}
	if cfg.UI.ResponseFormat != ResponseFormatJSON {
		t.Errorf("response format = %s, want json", cfg.UI.ResponseFormat)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color scheme = %s, want the auto default", cfg.UI.ColorScheme)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("log level = %s, want debug", cfg.Log.Level)
	}
	if cfg.Log.MaxBackups != 7 {
		t.Errorf("max backups = %d, want 7", cfg.Log.MaxBackups)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("max size = %d, want the default 10", cfg.Log.MaxSizeMB)
	}
	if cfg.EnvPrefix != "MYZOWE" {
		t.Errorf("env prefix = %q, want MYZOWE", cfg.EnvPrefix)
	}
	if len(cfg.Definitions) != 2 || cfg.Definitions[0] != "jobs.cue" {
		t.Errorf("definitions = %v", cfg.Definitions)
	}
}

func TestLoad_FallsBackToWorkingDirectory(t *testing.T) {
	wd := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(wd, ConfigFileName+"."+ConfigFileExt), `log: level: "warn"`)
	t.Cleanup(testutil.MustChdir(t, wd))

	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != ConfigFileName+"."+ConfigFileExt {
		t.Errorf("path = %q, want the working-directory config", path)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("log level = %s, want warn", cfg.Log.Level)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: color_scheme: "dark"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("color scheme = %s, want dark", cfg.UI.ColorScheme)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("resource = %q, want %q", ae.Resource, missing)
	}
	if ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("issue = %d, want ConfigLoadFailedId", ae.Issue)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on missing config error")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown color scheme", `ui: color_scheme: "neon"`},
		{"unknown field", `ui: colour: "dark"`},
		{"lower-case prefix", `env_prefix: "zowe"`},
		{"negative backups", `log: max_backups: -1`},
		{"empty definition", `definitions: [""]`},
		{"syntax error", `ui: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatalf("expected error for %s", tt.content)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("expected ConfigLoadFailed actionable error, got %v", err)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `log: level: "warn"`)
	t.Setenv("ZOWE_CLI_LOG_LEVEL", "error")
	t.Setenv("ZOWE_CLI_UI_VERBOSE", "true")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Log.Level != LogLevelError {
		t.Errorf("log level = %s, want error from the environment", cfg.Log.Level)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose from the environment")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("ZOWE_CLI_UI_RESPONSE_FORMAT", "xml")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for invalid response format")
	}
	if !errors.Is(err, ErrInvalidResponseFormat) {
		t.Errorf("error should wrap ErrInvalidResponseFormat, got: %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(configDir)
	defer Reset()

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if want := filepath.Join(configDir, "config.cue"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// A second call keeps the existing file.
	if err := os.WriteFile(path, []byte(`log: level: "debug"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"debug"`) {
		t.Error("CreateDefaultConfig overwrote an existing file")
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.ColorScheme = ColorSchemeLight
	cfg.Log.File = "/var/log/zowe.log"
	cfg.Definitions = []string{"a.cue", "b.json"}

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(cfg))

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if loaded.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("color scheme = %s, want light", loaded.UI.ColorScheme)
	}
	if loaded.Log.File != cfg.Log.File {
		t.Errorf("log file = %q, want %q", loaded.Log.File, cfg.Log.File)
	}
	if len(loaded.Definitions) != 2 || loaded.Definitions[1] != "b.json" {
		t.Errorf("definitions = %v", loaded.Definitions)
	}
	if loaded.EnvPrefix != DefaultEnvPrefix {
		t.Errorf("env prefix = %q", loaded.EnvPrefix)
	}
}

func TestSchema_Embedded(t *testing.T) {
	t.Parallel()

	if !strings.Contains(string(Schema()), "#Config") {
		t.Error("embedded schema does not define #Config")
	}
}
