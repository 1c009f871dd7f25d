package cli

import (
	"context"
	"fmt"
	"strings"

	"focus-tracker/internal/api"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
)

// AddOptions are the add command flags
type AddOptions struct {
	Title    string
	Duration string
	Start    string
	End      string
}

// AddCommand handles the add command
type AddCommand struct {
	businessAPI  api.BusinessAPI
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		businessAPI:  app.businessAPI,
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute records a session that was not timed live
func (c *AddCommand) Execute(ctx context.Context, opts AddOptions) error {
	if strings.TrimSpace(opts.Duration) == "" {
		return errors.NewInvalidInputError("duration", opts.Duration, "usage: ft add --duration 25m [--start ISO|HH:MM] [--end ISO|HH:MM] [--title T]")
	}

	result, err := c.businessAPI.AddSession(ctx, opts.Title, opts.Duration, opts.Start, opts.End)
	if err != nil {
		return c.errorHandler.Handle("add session", err)
	}

	s := c.app.styles
	fmt.Fprintln(c.app.out, s.Success.Render("Saved session: "+duration.FormatClock(result.Session.DurationSeconds)))
	fmt.Fprintf(c.app.out, "  %s  %s -> %s\n",
		result.Session.DisplayTitle(),
		result.Session.Start.Format("2006-01-02 15:04"),
		result.Session.End.Format("15:04"))
	fmt.Fprintln(c.app.out, "Saved to: "+result.Location)
	return nil
}
