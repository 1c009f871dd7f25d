package cli

import (
	"fmt"

	"focus-tracker/internal/config"
	"focus-tracker/internal/errors"

	"gopkg.in/yaml.v3"
)

// ConfigCommand handles the config show and config init commands
type ConfigCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(app *App) *ConfigCommand {
	return &ConfigCommand{app: app, errorHandler: NewErrorHandler()}
}

// Show prints the effective configuration as YAML
func (c *ConfigCommand) Show() error {
	data, err := yaml.Marshal(c.app.config)
	if err != nil {
		return c.errorHandler.Handle("show config", errors.WrapError(err, errors.ErrorTypeValidation, "encode config"))
	}
	fmt.Fprintf(c.app.out, "# %s\n%s", c.app.configPath, data)
	return nil
}

// Init writes a config file holding the defaults
func (c *ConfigCommand) Init(force bool) error {
	if err := config.WriteDefault(c.app.configPath, config.NewConfig(), force); err != nil {
		return c.errorHandler.Handle("write config", err)
	}
	fmt.Fprintln(c.app.out, "Wrote default config to "+c.app.configPath)
	return nil
}
