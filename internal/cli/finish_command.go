package cli

import (
	"context"
	"fmt"

	"focus-tracker/internal/api"
	"focus-tracker/internal/duration"
)

// FinishCommand handles the finish command
type FinishCommand struct {
	businessAPI  api.BusinessAPI
	app          *App
	errorHandler *ErrorHandler
}

// NewFinishCommand creates a new finish command handler
func NewFinishCommand(app *App) *FinishCommand {
	return &FinishCommand{
		businessAPI:  app.businessAPI,
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute marks a goal finished
func (c *FinishCommand) Execute(ctx context.Context, title string) error {
	summary, err := c.businessAPI.FinishGoal(ctx, title)
	if err != nil {
		return c.errorHandler.Handle("finish goal", err)
	}

	s := c.app.styles
	fmt.Fprintln(c.app.out, s.Success.Render("Finished goal: "+summary.Goal.Title))
	fmt.Fprintln(c.app.out, s.field("Worked", duration.FormatHuman(summary.Goal.TimeWorkedSeconds)))
	return nil
}
