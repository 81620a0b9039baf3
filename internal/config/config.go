package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// LISTENUP_DB or LISTENUP_LOG_LEVEL.
const EnvPrefix = "LISTENUP"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration merged from defaults, an optional
// config file, environment variables and command-line flags.
type Config struct {
	DB        string  `mapstructure:"db"`        // history database path; empty means the default location
	Questions string  `mapstructure:"questions"` // question bank file; empty means the built-in bank
	Player    string  `mapstructure:"player"`    // name pre-filled on the start screen
	History   History `mapstructure:"history"`
	Log       Log     `mapstructure:"log"`
}

// History configures the result history store.
type History struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"` // rows shown by the history screen and command
}

// Log configures file logging.
type Log struct {
	File   string `mapstructure:"file"`   // empty disables logging
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // "json" or "pretty"
}

// Options controls where Load looks for its inputs.
type Options struct {
	// ConfigDir overrides the directory searched for config.yaml.
	ConfigDir string

	// EnvFiles are loaded into the process environment before reading.
	// Nil loads ".env" from the working directory if present.
	EnvFiles []string

	// Flags, when set, are bound over every other source.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db":        "db",
	"questions": "questions",
	"log-file":  "log.file",
	"log-level": "log.level",
	"name":      "player",
	"limit":     "history.limit",
}

// Load reads configuration from all sources.
func Load(opts Options) (*Config, error) {
	// Missing .env files are fine.
	_ = godotenv.Load(opts.EnvFiles...)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := configDir(opts.ConfigDir); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetDefault("db", "")
	v.SetDefault("questions", "")
	v.SetDefault("player", "")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if opts.Flags != nil {
		if noHistory, err := opts.Flags.GetBool("no-history"); err == nil && noHistory {
			cfg.History.Enabled = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that the type system cannot.
func (c *Config) Validate() error {
	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit must not be negative (got %d)", ErrInvalidConfig, c.History.Limit)
	}
	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("%w: log.format must be json or pretty (got %q)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// configDir resolves the config directory:
// 1. explicit override
// 2. $XDG_CONFIG_HOME/listenup
// 3. ~/.config/listenup
func configDir(override string) string {
	if override != "" {
		return override
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listenup")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "listenup")
}
