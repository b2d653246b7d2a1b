// Package config loads svgroi settings from defaults, an optional config
// file, SVGROI_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "svgroi"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes every environment variable read.
	EnvPrefix = "SVGROI"
)

// Config holds the settings of a conversion run.
type Config struct {
	// OutputDir is where archives are written. A relative path is taken
	// relative to the input folder.
	OutputDir string `mapstructure:"output_dir"`
	// Workers bounds how many documents are converted at once.
	Workers int `mapstructure:"workers"`
	// Scale is applied to every coordinate: > 0 multiplies, < 0 divides by
	// -Scale, 0 leaves coordinates alone.
	Scale float64 `mapstructure:"scale"`
	// DryRun converts without writing archives.
	DryRun bool `mapstructure:"dry_run"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns the settings used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "ROI Sets",
		Workers:   runtime.NumCPU(),
		LogLevel:  "info",
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ResolveOutputDir returns the archive directory for the input folder
// dir.
func (c *Config) ResolveOutputDir(dir string) string {
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(dir, c.OutputDir)
}

// ConfigDir returns the directory the default config file lives in:
// $XDG_CONFIG_HOME/svgroi, falling back to ~/.config/svgroi.
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load builds the configuration. path names a config file that must
// exist; when empty the default location is searched and a missing file
// is not an error. Flags that were set on the command line win over
// everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("scale", defaults.Scale)
	v.SetDefault("dry_run", defaults.DryRun)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if dir, err := ConfigDir(); err == nil {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for _, key := range []string{"output_dir", "workers", "scale", "dry_run", "log_level"} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
