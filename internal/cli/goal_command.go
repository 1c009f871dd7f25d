package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focus-tracker/internal/api"
	"focus-tracker/internal/domain"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/services"

	"github.com/dustin/go-humanize"
)

// GoalOptions are the goal command flags
type GoalOptions struct {
	Title    string
	Estimate string
	Deadline string
	All      bool
}

// GoalCommand handles the goal command
type GoalCommand struct {
	businessAPI  api.BusinessAPI
	app          *App
	errorHandler *ErrorHandler
}

// NewGoalCommand creates a new goal command handler
func NewGoalCommand(app *App) *GoalCommand {
	return &GoalCommand{
		businessAPI:  app.businessAPI,
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows or updates one goal when a title is given, otherwise lists goals
func (c *GoalCommand) Execute(ctx context.Context, opts GoalOptions) error {
	if strings.TrimSpace(opts.Title) == "" {
		if opts.Estimate != "" || opts.Deadline != "" {
			return errors.NewInvalidInputError("title", opts.Title, "--title is required to set an estimate or deadline")
		}
		return c.list(ctx, opts.All)
	}

	summary, err := c.businessAPI.UpdateGoal(ctx, opts.Title, opts.Estimate, opts.Deadline)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) && opts.Estimate == "" {
			return fmt.Errorf("%w (%s)", c.errorHandler.Handle("update goal", err), createHint(err))
		}
		return c.errorHandler.Handle("update goal", err)
	}
	c.printDetails(summary)
	return nil
}

func (c *GoalCommand) list(ctx context.Context, all bool) error {
	summaries, err := c.businessAPI.ListGoals(ctx, all)
	if err != nil {
		return c.errorHandler.Handle("list goals", err)
	}

	if len(summaries) == 0 {
		if all {
			fmt.Fprintln(c.app.out, "No goals yet. Sessions create them automatically.")
		} else {
			fmt.Fprintln(c.app.out, "No goals with an estimate. Set one with: ft goal --title T --estimate 10h")
		}
		return nil
	}

	for i, summary := range summaries {
		if all {
			c.printCompact(summary)
			continue
		}
		if i > 0 {
			fmt.Fprintln(c.app.out)
		}
		c.printDetails(summary)
	}
	return nil
}

func (c *GoalCommand) printDetails(summary *services.GoalSummary) {
	s := c.app.styles
	g := summary.Goal
	now := timeNow()

	fmt.Fprintln(c.app.out, s.Heading.Render(g.Title))
	if g.HasEstimate() {
		fmt.Fprintln(c.app.out, s.field("Estimate", duration.FormatHuman(g.EstimateSeconds)))
		fmt.Fprintln(c.app.out, s.field("Worked", duration.FormatHuman(g.TimeWorkedSeconds)+" since estimate"))
		fmt.Fprintln(c.app.out, s.field("Remaining", duration.FormatHuman(summary.RemainingSeconds)))
	}
	fmt.Fprintln(c.app.out, s.field("Total worked", duration.FormatHuman(summary.TotalWorkedSeconds)))
	if g.Deadline != nil {
		fmt.Fprintln(c.app.out, s.field("Deadline", relativeDate(*g.Deadline, now)))
	}
	if g.StartBy != nil {
		fmt.Fprintln(c.app.out, s.field("Start by", relativeDate(*g.StartBy, now)))
	}
}

func (c *GoalCommand) printCompact(summary *services.GoalSummary) {
	g := summary.Goal
	line := fmt.Sprintf("%s%8s", padRight(g.Title, 28), duration.FormatHuman(summary.TotalWorkedSeconds))
	if g.HasEstimate() {
		line += " / " + duration.FormatHuman(g.EstimateSeconds)
	}
	if g.Deadline != nil {
		line += "  due " + domain.FormatDate(*g.Deadline)
	}
	fmt.Fprintln(c.app.out, line)
}

// createHint suggests the command that creates the missing goal
func createHint(err error) string {
	title := "T"
	if appErr, ok := errors.AsAppError(err); ok {
		if v, ok := appErr.GetContext("title"); ok {
			title = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("an estimate creates it: ft goal --title %q --estimate 10h", title)
}

// relativeDate renders "2025-03-20 (in 6 days)" against today
func relativeDate(date, now time.Time) string {
	today := domain.Date(now)
	var rel string
	switch days := domain.DaysBetween(today, date); {
	case days == 0:
		rel = "today"
	case days == 1:
		rel = "tomorrow"
	case days == -1:
		rel = "yesterday"
	default:
		rel = humanize.RelTime(date, today, "ago", "from now")
	}
	return fmt.Sprintf("%s (%s)", domain.FormatDate(date), rel)
}
