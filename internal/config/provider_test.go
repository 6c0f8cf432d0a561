// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewProvider_ExplicitPathWins(t *testing.T) {
	dirCfg := t.TempDir()
	writeConfig(t, dirCfg, `log: level: "warn"`)

	explicit := filepath.Join(t.TempDir(), "explicit.cue")
	writeConfigAt(t, explicit, `log: level: "debug"`)

	cfg, path, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: explicit,
		ConfigDirPath:  dirCfg,
	})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != explicit {
		t.Errorf("path = %q, want %q", path, explicit)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("log level = %s, want debug from the explicit file", cfg.Log.Level)
	}
}

func TestNewProvider_UsesConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `ui: response_format: "json"`)
	SetConfigDirOverride(dir)
	defer Reset()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.UI.ResponseFormat != ResponseFormatJSON {
		t.Errorf("response format = %s, want json", cfg.UI.ResponseFormat)
	}
}

func writeConfigAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}
