package config

import (
	"os"
	"path/filepath"
	"strconv"

	"focus-tracker/internal/errors"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a loader reading the default config file
func NewLoader() *Loader {
	return NewLoaderWithFile(DefaultConfigPath())
}

// NewLoaderWithFile creates a loader reading the YAML file at path.
// An empty path skips the file layer.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// Path returns the config file consulted by Load
func (l *Loader) Path() string {
	return l.path
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, when present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := loadFile(l.path, l.config); err != nil && !os.IsNotExist(err) {
			return nil, &ConfigError{Field: "file", Message: l.path + ": " + err.Error()}
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// DefaultConfigPath returns $FT_CONFIG or ~/.config/ft/config.yaml
func DefaultConfigPath() string {
	if path := os.Getenv("FT_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ft", "config.yaml")
}

// WriteDefault writes cfg as YAML to path. An existing file is kept unless force is set.
func WriteDefault(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.NewValidationError("config file already exists: "+path, nil)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeValidation, "encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("create config directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("write config file", err)
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageDir *string
	Backend    *string

	// Timer overrides
	Clock       *string
	ClockLength *string
	BarWidth    *int
	Countdown   *bool
	EstimateBar *bool
	AutoSave    *bool

	// Planning overrides
	WorkPerDay *string

	// Application overrides
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.Backend != nil {
		config.Storage.Backend = *overrides.Backend
	}

	if overrides.Clock != nil {
		config.Timer.Clock = *overrides.Clock
	}
	if overrides.ClockLength != nil {
		config.Timer.ClockLength = *overrides.ClockLength
	}
	if overrides.BarWidth != nil {
		config.Timer.BarWidth = *overrides.BarWidth
	}
	if overrides.Countdown != nil {
		config.Timer.Countdown = *overrides.Countdown
	}
	if overrides.EstimateBar != nil {
		config.Timer.EstimateBar = *overrides.EstimateBar
	}
	if overrides.AutoSave != nil {
		config.Timer.AutoSave = *overrides.AutoSave
	}

	if overrides.WorkPerDay != nil {
		config.Planning.WorkPerDay = *overrides.WorkPerDay
	}

	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
