package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testSources(env map[string]string, dotenv, configPath string) sources {
	return sources{
		getenv:     func(k string) string { return env[k] },
		dotenvPath: dotenv,
		defaultConfig: func() (string, error) {
			return configPath, nil
		},
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("momentum", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(newFlagSet(), nil, testSources(nil, filepath.Join(dir, ".env"), filepath.Join(dir, "missing.toml")))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Theme != ThemeLight {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	if cfg.Username != "User" {
		t.Errorf("Username: got %q", cfg.Username)
	}
	if cfg.UndoTimeout.Duration != 6*time.Second {
		t.Errorf("UndoTimeout: got %v", cfg.UndoTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, `
theme = "dark"
username = "Ana"
undo_timeout = "10s"
log_level = "debug"
quotes = ["Keep going.", "  "]
`)
	dotenvPath := filepath.Join(dir, ".env")
	writeFile(t, dotenvPath, "MOMENTUM_USERNAME=Bea\nMOMENTUM_EXPORT=from-dotenv.db\nMOMENTUM_LOG_LEVEL=warn\n")

	env := map[string]string{"MOMENTUM_LOG_LEVEL": "error"}
	args := []string{"-undo-timeout", "2s", "-theme", "high-contrast"}

	cfg, err := load(newFlagSet(), args, testSources(env, dotenvPath, configPath))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ConfigFile != configPath {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	// flag beats file
	if cfg.Theme != ThemeHighContrast {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	if cfg.UndoTimeout.Duration != 2*time.Second {
		t.Errorf("UndoTimeout: got %v", cfg.UndoTimeout)
	}
	// .env beats file
	if cfg.Username != "Bea" {
		t.Errorf("Username: got %q", cfg.Username)
	}
	if cfg.ExportPath != "from-dotenv.db" {
		t.Errorf("ExportPath: got %q", cfg.ExportPath)
	}
	// real environment beats .env
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if len(cfg.Quotes) != 1 || cfg.Quotes[0] != "Keep going." {
		t.Errorf("Quotes: got %q", cfg.Quotes)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	dir := t.TempDir()
	args := []string{"-config", filepath.Join(dir, "nope.toml")}
	_, err := load(newFlagSet(), args, testSources(nil, "", ""))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	writeFile(t, configPath, "colour = \"red\"\n")

	_, err := load(newFlagSet(), []string{"-config", configPath}, testSources(nil, "", ""))
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("expected unknown keys error, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad theme", []string{"-theme", "solarized"}},
		{"bad level", []string{"-log-level", "trace"}},
		{"bad duration", []string{"-undo-timeout", "soon"}},
		{"zero duration", []string{"-undo-timeout", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(newFlagSet(), tt.args, testSources(nil, "", "")); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNormalizeTheme(t *testing.T) {
	tests := map[string]string{
		"light":         ThemeLight,
		" DARK ":        ThemeDark,
		"high contrast": ThemeHighContrast,
		"High_Contrast": ThemeHighContrast,
	}
	for in, want := range tests {
		got, ok := NormalizeTheme(in)
		if !ok || got != want {
			t.Errorf("NormalizeTheme(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := NormalizeTheme("neon"); ok {
		t.Error("unexpected theme accepted")
	}
}
