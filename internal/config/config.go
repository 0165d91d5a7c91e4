// Package config loads momentum settings from defaults, a TOML file, a .env
// file, MOMENTUM_* environment variables and command-line flags, in that
// order of increasing priority.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Theme names.
const (
	ThemeLight        = "Light"
	ThemeDark         = "Dark"
	ThemeHighContrast = "High Contrast"
)

// Themes lists the themes in cycling order.
var Themes = []string{ThemeLight, ThemeDark, ThemeHighContrast}

// Config holds all user-tunable settings.
type Config struct {
	Theme       string   `toml:"theme"`
	Username    string   `toml:"username"`
	UndoTimeout Duration `toml:"undo_timeout"`
	LogFile     string   `toml:"log_file"`
	LogLevel    string   `toml:"log_level"`
	ImportPath  string   `toml:"import"`
	ExportPath  string   `toml:"export"`
	Quotes      []string `toml:"quotes"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `toml:"-"`
}

// Duration is a time.Duration written as "6s" in TOML and env values.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func setDefaults(cfg *Config) {
	cfg.Theme = ThemeLight
	cfg.Username = "User"
	cfg.UndoTimeout = Duration{6 * time.Second}
	cfg.LogLevel = "info"
}

var logLevels = []string{"debug", "info", "warn", "error"}

func finalizeConfig(cfg *Config) error {
	theme, ok := NormalizeTheme(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (want one of %s)", cfg.Theme, strings.Join(Themes, ", "))
	}
	cfg.Theme = theme

	cfg.Username = strings.TrimSpace(cfg.Username)
	if cfg.Username == "" {
		cfg.Username = "User"
	}

	if cfg.UndoTimeout.Duration <= 0 {
		return fmt.Errorf("undo timeout must be positive, got %s", cfg.UndoTimeout.Duration)
	}

	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	valid := false
	for _, l := range logLevels {
		if l == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	cfg.LogLevel = level

	var quotes []string
	for _, q := range cfg.Quotes {
		if q = strings.TrimSpace(q); q != "" {
			quotes = append(quotes, q)
		}
	}
	cfg.Quotes = quotes
	return nil
}

// NormalizeTheme maps a theme name in any case to its canonical spelling.
func NormalizeTheme(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", " ")
	n = strings.ReplaceAll(n, "_", " ")
	for _, t := range Themes {
		if strings.ToLower(t) == n {
			return t, true
		}
	}
	return "", false
}
