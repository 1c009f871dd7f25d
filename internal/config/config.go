package config

import (
	"os"
	"path/filepath"
	"strconv"

	"focus-tracker/internal/duration"
	"focus-tracker/internal/repository"
)

// Clock modes accepted by timer.clock
const (
	ClockDigital = "digital"
	ClockDots    = "dots"
	ClockBar     = "bar"
)

// Config holds all configuration options for the focus tracker
type Config struct {
	Storage     StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Timer       TimerConfig       `mapstructure:"timer" yaml:"timer"`
	Planning    PlanningConfig    `mapstructure:"planning" yaml:"planning"`
	Validation  ValidationConfig  `mapstructure:"validation" yaml:"validation"`
	Application ApplicationConfig `mapstructure:"application" yaml:"application"`
}

// StorageConfig selects where and how sessions and goals are persisted
type StorageConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir" env:"FT_STORAGE_DIR"`
	Backend string `mapstructure:"backend" yaml:"backend" env:"FT_STORAGE_BACKEND"`
}

// TimerConfig holds the live display options. Durations are duration strings ("25m", "1h30m").
type TimerConfig struct {
	Clock       string `mapstructure:"clock" yaml:"clock" env:"FT_TIMER_CLOCK"`
	ClockLength string `mapstructure:"clock_length" yaml:"clock_length" env:"FT_TIMER_CLOCK_LENGTH"`
	BarWidth    int    `mapstructure:"bar_width" yaml:"bar_width" env:"FT_TIMER_BAR_WIDTH"`
	Countdown   bool   `mapstructure:"countdown" yaml:"countdown" env:"FT_TIMER_COUNTDOWN"`
	EstimateBar bool   `mapstructure:"estimate_bar" yaml:"estimate_bar" env:"FT_TIMER_ESTIMATE_BAR"`
	AutoSave    bool   `mapstructure:"auto_save" yaml:"auto_save" env:"FT_TIMER_AUTO_SAVE"`
	Milestones  bool   `mapstructure:"milestones" yaml:"milestones" env:"FT_TIMER_MILESTONES"`
	Color       bool   `mapstructure:"color" yaml:"color" env:"FT_TIMER_COLOR"`
	Nickname    string `mapstructure:"nickname" yaml:"nickname" env:"FT_TIMER_NICKNAME"`
}

// PlanningConfig holds the daily throughput budget used for start-by dates
type PlanningConfig struct {
	WorkPerDay string `mapstructure:"work_per_day" yaml:"work_per_day" env:"FT_PLANNING_WORK_PER_DAY"`
}

// ValidationConfig holds input validation limits
type ValidationConfig struct {
	TitleMaxLength int    `mapstructure:"title_max_length" yaml:"title_max_length" env:"FT_VALIDATION_TITLE_MAX"`
	MaxBackfill    string `mapstructure:"max_backfill" yaml:"max_backfill" env:"FT_VALIDATION_MAX_BACKFILL"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose" env:"FT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Dir:     filepath.Join(homeDir, ".ft"),
			Backend: string(repository.BackendCSV),
		},
		Timer: TimerConfig{
			Clock:       ClockDigital,
			ClockLength: "60m",
			BarWidth:    42,
			Countdown:   true,
			EstimateBar: true,
			AutoSave:    false,
			Milestones:  true,
			Color:       true,
		},
		Planning: PlanningConfig{
			WorkPerDay: "8h",
		},
		Validation: ValidationConfig{
			TitleMaxLength: 255,
			MaxBackfill:    "24h",
		},
	}
}

// ClockLengthSeconds returns the bar-mode target in seconds
func (c *Config) ClockLengthSeconds() int {
	return duration.ParseDefault(c.Timer.ClockLength, 60*60)
}

// WorkPerDaySeconds returns the planning throughput budget in seconds
func (c *Config) WorkPerDaySeconds() int {
	return duration.ParseDefault(c.Planning.WorkPerDay, 8*60*60)
}

// MaxBackfillSeconds returns the longest session accepted by a manual entry
func (c *Config) MaxBackfillSeconds() int {
	return duration.ParseDefault(c.Validation.MaxBackfill, 24*60*60)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("FT_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if backend := os.Getenv("FT_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}

	// Timer configuration
	if clock := os.Getenv("FT_TIMER_CLOCK"); clock != "" {
		c.Timer.Clock = clock
	}
	if length := os.Getenv("FT_TIMER_CLOCK_LENGTH"); length != "" {
		c.Timer.ClockLength = length
	}
	if width := os.Getenv("FT_TIMER_BAR_WIDTH"); width != "" {
		c.Timer.BarWidth = ParseIntWithFallback(width, c.Timer.BarWidth)
	}
	if countdown := os.Getenv("FT_TIMER_COUNTDOWN"); countdown != "" {
		c.Timer.Countdown = ParseBoolWithFallback(countdown, c.Timer.Countdown)
	}
	if bar := os.Getenv("FT_TIMER_ESTIMATE_BAR"); bar != "" {
		c.Timer.EstimateBar = ParseBoolWithFallback(bar, c.Timer.EstimateBar)
	}
	if autoSave := os.Getenv("FT_TIMER_AUTO_SAVE"); autoSave != "" {
		c.Timer.AutoSave = ParseBoolWithFallback(autoSave, c.Timer.AutoSave)
	}
	if milestones := os.Getenv("FT_TIMER_MILESTONES"); milestones != "" {
		c.Timer.Milestones = ParseBoolWithFallback(milestones, c.Timer.Milestones)
	}
	if color := os.Getenv("FT_TIMER_COLOR"); color != "" {
		c.Timer.Color = ParseBoolWithFallback(color, c.Timer.Color)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Timer.Color = false
	}
	if nick := os.Getenv("FT_TIMER_NICKNAME"); nick != "" {
		c.Timer.Nickname = nick
	}

	// Planning configuration
	if perDay := os.Getenv("FT_PLANNING_WORK_PER_DAY"); perDay != "" {
		c.Planning.WorkPerDay = perDay
	}

	// Validation configuration
	if maxLen := os.Getenv("FT_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxBackfill := os.Getenv("FT_VALIDATION_MAX_BACKFILL"); maxBackfill != "" {
		c.Validation.MaxBackfill = maxBackfill
	}

	// Application configuration
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if _, err := repository.ParseBackend(c.Storage.Backend); err != nil {
		return &ConfigError{Field: "storage.backend", Message: "must be csv or sqlite, got " + strconv.Quote(c.Storage.Backend)}
	}

	switch c.Timer.Clock {
	case ClockDigital, ClockDots, ClockBar:
	default:
		return &ConfigError{Field: "timer.clock", Message: "must be digital, dots or bar, got " + strconv.Quote(c.Timer.Clock)}
	}
	if _, err := duration.Parse(c.Timer.ClockLength); err != nil {
		return &ConfigError{Field: "timer.clock_length", Message: err.Error()}
	}
	if c.Timer.BarWidth < 1 {
		return &ConfigError{Field: "timer.bar_width", Message: "bar width must be positive"}
	}

	if _, err := duration.Parse(c.Planning.WorkPerDay); err != nil {
		return &ConfigError{Field: "planning.work_per_day", Message: err.Error()}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if _, err := duration.Parse(c.Validation.MaxBackfill); err != nil {
		return &ConfigError{Field: "validation.max_backfill", Message: err.Error()}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
