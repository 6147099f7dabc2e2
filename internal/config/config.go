package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Variant selects the column sets and encoding: encoded | training.
	Variant  string `mapstructure:"variant" yaml:"variant"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Output of the run command
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	OutputOrient string `mapstructure:"output_orient" yaml:"output_orient"`
	PreviewRows  int    `mapstructure:"preview_rows" yaml:"preview_rows"`
}

// Path resolves the config file location. If cfgFile is empty,
// it is ~/.riskprep/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".riskprep", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadFile loads configuration from file and defaults only, ignoring env.
// Use it before Save so overrides from the current run are not persisted.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("RISKPREP")
		v.AutomaticEnv()
	}

	// Defaults
	v.SetDefault("variant", "encoded")
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "json")
	v.SetDefault("output_orient", "records")
	v.SetDefault("preview_rows", 5)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := Path("")
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// a missing file is fine; a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseLevel maps a config log level to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", s)
	}
}
