// Package config loads uicons-index settings from flags, UICONS_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. UICONS_JOBS.
	EnvPrefix = "UICONS"
	// FileName is looked up in the working directory when no --config is given.
	FileName = ".uicons-index"
)

// Keys shared by flags, env and file.
const (
	KeyRoot     = "root"
	KeyJobs     = "jobs"
	KeyLogLevel = "log-level"
	KeyDebounce = "debounce"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	Root     string        `mapstructure:"root"`
	Jobs     int           `mapstructure:"jobs"`
	LogLevel string        `mapstructure:"log-level"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRoot, "./")
	v.SetDefault(KeyJobs, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDebounce, 500*time.Millisecond)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (explicit path, or FileName in the working
// directory if present) and returns the validated settings. A missing
// default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the indexer cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("config: root must be non-empty")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("config: jobs must be >= 0, got %d", c.Jobs)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("config: debounce must be >= 0, got %s", c.Debounce)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
