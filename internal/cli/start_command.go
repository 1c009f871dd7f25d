package cli

import (
	"context"
	"fmt"
	"strings"

	"focus-tracker/internal/api"
	"focus-tracker/internal/config"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/render"
	"focus-tracker/internal/timer"
)

// StartOptions are the start command flags
type StartOptions struct {
	Title  string
	Length string // bar target, overrides timer.clock_length
}

// StartCommand handles the start command
type StartCommand struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		businessAPI:  app.businessAPI,
		config:       app.config,
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs a live session until it is saved, discarded or interrupted
func (c *StartCommand) Execute(ctx context.Context, opts StartOptions) error {
	plan, err := c.businessAPI.PrepareSession(ctx, opts.Title)
	if err != nil {
		return c.errorHandler.Handle("start session", err)
	}

	renderOpts, err := c.renderOptions(opts, plan)
	if err != nil {
		return c.errorHandler.Handle("start session", err)
	}

	console := c.app.console()
	if !console.IsTerminal() {
		fmt.Fprintln(c.app.out, c.app.styles.Muted.Render("Input is not a terminal; keys are read as they arrive."))
	}
	engine := timer.NewEngine(timer.SystemClock{}, console, console, c.businessAPI,
		render.NewPolicy(renderOpts), c.app.out, timer.Options{
			Title:    plan.Title,
			Nickname: c.config.Timer.Nickname,
			AutoSave: c.config.Timer.AutoSave,
		})

	result, err := engine.Run(ctx)
	if err != nil {
		return c.errorHandler.Handle("run session", err)
	}
	logging.Debugf("session %s after %ds\n", result.State, result.ElapsedSeconds)
	return nil
}

func (c *StartCommand) renderOptions(opts StartOptions, plan *api.SessionPlan) (render.Options, error) {
	clock := c.config.Timer.Clock
	mode, err := render.ParseMode(clock)
	if err != nil {
		return render.Options{}, errors.NewInvalidInputError("clock", clock, "must be digital, dots or bar")
	}

	length := c.config.ClockLengthSeconds()
	if strings.TrimSpace(opts.Length) != "" {
		if length, err = duration.Parse(opts.Length); err != nil {
			return render.Options{}, err
		}
	}

	return render.Options{
		Mode:            mode,
		BarWidth:        c.config.Timer.BarWidth,
		ClockLength:     length,
		Countdown:       c.config.Timer.Countdown,
		EstimateBar:     c.config.Timer.EstimateBar,
		EstimateSeconds: plan.EstimateSeconds,
		WorkedBefore:    plan.WorkedSeconds,
		Milestones:      c.config.Timer.Milestones,
		Color:           c.config.Timer.Color,
	}, nil
}
