package cli

import (
	"io"
	"os"
	"time"

	"focus-tracker/internal/api"
	"focus-tracker/internal/config"
	"focus-tracker/internal/terminal"
	"focus-tracker/internal/timer"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Console is the keyboard the live timer reads from
type Console interface {
	timer.Input
	timer.InputMode
	IsTerminal() bool
}

// App carries what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	configPath  string
	out         io.Writer
	console     func() Console
	styles      Styles
}

// NewApp creates an application with default configuration
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates an application writing to stdout and reading keys from stdin
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		configPath:  config.DefaultConfigPath(),
		out:         os.Stdout,
		console:     func() Console { return terminal.New(os.Stdin) },
		styles:      NewStyles(cfg.Timer.Color),
	}
}

// WithOutput redirects command output
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithConsole replaces the keyboard source used by the timer
func (a *App) WithConsole(console func() Console) *App {
	a.console = console
	return a
}

// WithConfigPath sets the file shown and written by the config command
func (a *App) WithConfigPath(path string) *App {
	a.configPath = path
	return a
}
