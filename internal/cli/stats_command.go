package cli

import (
	"context"
	"fmt"

	"focus-tracker/internal/api"
	"focus-tracker/internal/duration"
	"focus-tracker/internal/services"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// StatsOptions are the stats command flags
type StatsOptions struct {
	Title  string
	Since  string
	Until  string
	Titles bool
}

// StatsCommand handles the stats command
type StatsCommand struct {
	businessAPI  api.BusinessAPI
	app          *App
	errorHandler *ErrorHandler
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{
		businessAPI:  app.businessAPI,
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the rollup for the filtered sessions
func (c *StatsCommand) Execute(ctx context.Context, opts StatsOptions) error {
	report, err := c.businessAPI.GetStatistics(ctx, api.StatsQuery{
		Title: opts.Title,
		Since: opts.Since,
		Until: opts.Until,
	}, opts.Titles)
	if err != nil {
		return c.errorHandler.Handle("compute statistics", err)
	}

	stats := report.Statistics
	if stats.Count == 0 {
		fmt.Fprintln(c.app.out, "No sessions found.")
		return nil
	}

	s := c.app.styles
	out := c.app.out
	fmt.Fprintln(out, s.Heading.Render("Focus statistics"))
	fmt.Fprintln(out, s.field("Sessions", humanize.Comma(int64(stats.Count))))
	fmt.Fprintln(out, s.field("Total", duration.FormatHuman(stats.TotalSeconds)))
	fmt.Fprintln(out, s.field("Average", duration.FormatHuman(stats.AverageSeconds)))
	fmt.Fprintln(out, s.field("Today", windowLine(stats.TodaySeconds, stats.TodayPerDay)))
	fmt.Fprintln(out, s.field("Last 7 days", windowLine(stats.Last7Seconds, stats.Last7PerDay)))
	fmt.Fprintln(out, s.field("Last 30 days", windowLine(stats.Last30Seconds, stats.Last30PerDay)))
	fmt.Fprintln(out, s.field("All time", fmt.Sprintf("%s over %s",
		windowLine(stats.TotalSeconds, stats.AllTimePerDay), english.Plural(stats.AllTimeDays, "day", "days"))))

	if opts.Titles {
		c.printTitles(report.ByTitle)
	}
	return nil
}

func (c *StatsCommand) printTitles(groups []*services.TitleStatistics) {
	s := c.app.styles
	fmt.Fprintln(c.app.out)
	fmt.Fprintln(c.app.out, s.Heading.Render("By title"))
	for _, g := range groups {
		title := g.Title
		if g.Unnamed {
			title = s.Muted.Render(title)
		}
		fmt.Fprintf(c.app.out, "  %s%8s  %s\n",
			padRight(title, 28),
			duration.FormatHuman(g.TotalSeconds),
			english.Plural(g.Count, "session", "sessions"))
	}
}

func windowLine(total, perDay int) string {
	return fmt.Sprintf("%s (%s/day)", duration.FormatHuman(total), duration.FormatHuman(perDay))
}
