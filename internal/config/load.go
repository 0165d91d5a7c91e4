package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable momentum reads.
const EnvPrefix = "MOMENTUM_"

type sources struct {
	getenv        func(string) string
	dotenvPath    string
	defaultConfig func() (string, error)
}

// Load builds the configuration from every source. fs receives the
// command-line flags and is parsed with args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return load(fs, args, sources{
		getenv:        os.Getenv,
		dotenvPath:    ".env",
		defaultConfig: defaultConfigPath,
	})
}

type flagValues struct {
	configFile  string
	theme       string
	username    string
	undoTimeout string
	logFile     string
	logLevel    string
	importPath  string
	exportPath  string
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.configFile, "config", "", "path to config.toml")
	fs.StringVar(&v.theme, "theme", "", `colour theme: Light, Dark or "High Contrast"`)
	fs.StringVar(&v.username, "user", "", "name shown in the header")
	fs.StringVar(&v.undoTimeout, "undo-timeout", "", "how long a deleted task can be restored, e.g. 6s")
	fs.StringVar(&v.logFile, "log-file", "", "write logs to this file")
	fs.StringVar(&v.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&v.importPath, "import", "", "YAML file of tasks to start with")
	fs.StringVar(&v.exportPath, "export", "", "SQLite file snapshots are written to")
	return v
}

func load(fs *flag.FlagSet, args []string, src sources) (*Config, error) {
	flags := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &Config{}

	// 1. Defaults
	setDefaults(cfg)

	env, err := readEnv(src)
	if err != nil {
		return nil, err
	}

	// 2. Config file: explicit flag or env must exist, the default may not.
	path := flags.configFile
	if path == "" {
		path = env(EnvPrefix + "CONFIG")
	}
	required := path != ""
	if path == "" && src.defaultConfig != nil {
		if p, err := src.defaultConfig(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadConfigFile(cfg, path, required); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 3. Environment (.env values, overridden by the real environment)
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	// 4. Flags that were set explicitly
	if err := applyFlags(cfg, fs, flags); err != nil {
		return nil, err
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	cfg.ConfigFile = path
	return nil
}

func readEnv(src sources) (func(string) string, error) {
	dotenv := map[string]string{}
	if src.dotenvPath != "" {
		m, err := godotenv.Read(src.dotenvPath)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading %s: %w", src.dotenvPath, err)
		}
	}
	getenv := src.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}

func applyEnv(cfg *Config, env func(string) string) error {
	if v := env(EnvPrefix + "THEME"); v != "" {
		cfg.Theme = v
	}
	if v := env(EnvPrefix + "USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := env(EnvPrefix + "UNDO_TIMEOUT"); v != "" {
		if err := cfg.UndoTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sUNDO_TIMEOUT: %w", EnvPrefix, err)
		}
	}
	if v := env(EnvPrefix + "LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := env(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env(EnvPrefix + "IMPORT"); v != "" {
		cfg.ImportPath = v
	}
	if v := env(EnvPrefix + "EXPORT"); v != "" {
		cfg.ExportPath = v
	}
	return nil
}

func applyFlags(cfg *Config, fs *flag.FlagSet, v *flagValues) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			cfg.Theme = v.theme
		case "user":
			cfg.Username = v.username
		case "undo-timeout":
			if e := cfg.UndoTimeout.UnmarshalText([]byte(v.undoTimeout)); e != nil {
				err = fmt.Errorf("-undo-timeout: %w", e)
			}
		case "log-file":
			cfg.LogFile = v.logFile
		case "log-level":
			cfg.LogLevel = v.logLevel
		case "import":
			cfg.ImportPath = v.importPath
		case "export":
			cfg.ExportPath = v.exportPath
		}
	})
	return err
}

func defaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "momentum", "config.toml"), nil
}
