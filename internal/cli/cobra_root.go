package cli

import (
	"context"
	"io"
	"strings"

	"focus-tracker/internal/config"
	"focus-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// AppFactory builds the application once configuration is known.
// The returned function releases whatever the app opened.
type AppFactory func(cfg *config.Config) (*App, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	out     io.Writer
	config  *config.Config
	app     *App
	release func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "ft",
		Short: "A focus timer that tracks sessions against goals",
		Long: `Focus Tracker (ft) times focused work sessions in the terminal, keeps a ledger
of them and plans goals from estimates and deadlines.

EXAMPLES:
  ft start --title thesis                 # Live timer; Space pauses
  ft start -t thesis --clock bar -l 25m   # Pomodoro-style progress bar
  ft add --duration 45m --start 09:30     # Backfill a session
  ft goal --title thesis --estimate 20h --deadline 2025-06-30
  ft goal                                 # Goals with estimates
  ft finish --title thesis                # Mark a goal done
  ft stats --since 2025-01-01 --titles    # Totals and per-title breakdown

CONFIGURATION:
  Priority: command-line flags > environment variables > config file > defaults
  Config file: ~/.config/ft/config.yaml (FT_CONFIG), see 'ft config init'

  FT_STORAGE_DIR, FT_STORAGE_BACKEND      Data directory (~/.ft) and backend (csv|sqlite)
  FT_TIMER_CLOCK, FT_TIMER_CLOCK_LENGTH   Clock mode (digital|dots|bar) and bar target
  FT_TIMER_AUTO_SAVE                      Save on Ctrl+C and quit
  FT_PLANNING_WORK_PER_DAY                Daily work budget for start-by dates (8h)
  FT_DEBUG                                Debug logging to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetArgs overrides os.Args, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output of the app the factory builds
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
}

// Execute runs the root command. Cancelling ctx interrupts a running session.
func (r *RootCommand) Execute(ctx context.Context) error {
	defer func() {
		if r.release == nil {
			return
		}
		if err := r.release(); err != nil {
			logging.Debugf("release resources: %v\n", err)
		}
	}()
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides FT_CONFIG)")

	// Storage configuration
	flags.String("data-dir", "", "Data directory (overrides FT_STORAGE_DIR)")
	flags.String("backend", "", "Storage backend: csv or sqlite (overrides FT_STORAGE_BACKEND)")

	// Timer configuration
	flags.String("clock", "", "Clock mode: digital, dots or bar (overrides FT_TIMER_CLOCK)")
	flags.String("clock-length", "", "Bar target such as 25m (overrides FT_TIMER_CLOCK_LENGTH)")
	flags.Int("bar-width", 0, "Bar width in cells (overrides FT_TIMER_BAR_WIDTH)")
	flags.Bool("countdown", true, "Show time left in bar mode (overrides FT_TIMER_COUNTDOWN)")
	flags.Bool("estimate-bar", true, "Show progress toward the goal estimate (overrides FT_TIMER_ESTIMATE_BAR)")
	flags.Bool("auto-save", false, "Save on Ctrl+C and quit (overrides FT_TIMER_AUTO_SAVE)")

	// Planning configuration
	flags.String("work-per-day", "", "Daily work budget such as 6h (overrides FT_PLANNING_WORK_PER_DAY)")

	// Application configuration
	flags.BoolP("verbose", "v", false, "Enable debug output (overrides FT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Start command
	var startOpts StartOptions
	startCmd := &cobra.Command{
		Use:   "start [title]",
		Short: "Start a live focus session",
		Long: `Start a live timer. Space pauses; at the paused prompt type:
  save [title] | save --title "T"   save the session
  discard                           drop it
  resume (or Enter)                 carry on
  quit                              leave, saving only with --auto-save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startOpts.Title = titleFrom(startOpts.Title, args)
			return NewStartCommand(r.app).Execute(cmd.Context(), startOpts)
		},
	}
	startCmd.Flags().StringVarP(&startOpts.Title, "title", "t", "", "Session title")
	startCmd.Flags().StringVarP(&startOpts.Length, "length", "l", "", "Bar target for this session, such as 25m")

	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Record a past session",
		Long: `Record a session that was not timed live. Start and end accept an ISO
timestamp or HH:MM for today; a missing side is inferred from the duration
and without either the session ends now.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addOpts.Title = titleFrom(addOpts.Title, args)
			return NewAddCommand(r.app).Execute(cmd.Context(), addOpts)
		},
	}
	addCmd.Flags().StringVarP(&addOpts.Title, "title", "t", "", "Session title")
	addCmd.Flags().StringVarP(&addOpts.Duration, "duration", "d", "", "Duration such as 25m or 1h30m")
	addCmd.Flags().StringVar(&addOpts.Start, "start", "", "Start time (ISO timestamp or HH:MM)")
	addCmd.Flags().StringVar(&addOpts.End, "end", "", "End time (ISO timestamp or HH:MM)")
	_ = addCmd.MarkFlagRequired("duration")

	// Goal command
	var goalOpts GoalOptions
	goalCmd := &cobra.Command{
		Use:   "goal [title]",
		Short: "Show or plan goals",
		Long: `Without a title, list goals that have an estimate (--all lists every goal).
With a title, show that goal; --estimate and --deadline update it and restart
the estimate window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			goalOpts.Title = titleFrom(goalOpts.Title, args)
			return NewGoalCommand(r.app).Execute(cmd.Context(), goalOpts)
		},
	}
	goalCmd.Flags().StringVarP(&goalOpts.Title, "title", "t", "", "Goal title")
	goalCmd.Flags().StringVarP(&goalOpts.Estimate, "estimate", "e", "", "Estimate such as 20h")
	goalCmd.Flags().StringVar(&goalOpts.Deadline, "deadline", "", "Deadline date (YYYY-MM-DD)")
	goalCmd.Flags().BoolVarP(&goalOpts.All, "all", "a", false, "List every goal")

	// Finish command
	var finishTitle string
	finishCmd := &cobra.Command{
		Use:   "finish [title]",
		Short: "Mark a goal finished",
		Long:  "Clear a goal's estimate and deadline, keeping the time worked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewFinishCommand(r.app).Execute(cmd.Context(), titleFrom(finishTitle, args))
		},
	}
	finishCmd.Flags().StringVarP(&finishTitle, "title", "t", "", "Goal title")

	// Stats command
	var statsOpts StatsOptions
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session statistics",
		Long:  "Totals and per-day averages for today, the last 7 and 30 days and all time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewStatsCommand(r.app).Execute(cmd.Context(), statsOpts)
		},
	}
	statsCmd.Flags().StringVarP(&statsOpts.Title, "title", "t", "", "Only sessions with this title")
	statsCmd.Flags().StringVar(&statsOpts.Since, "since", "", "First day to include (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsOpts.Until, "until", "", "Last day to include (YYYY-MM-DD)")
	statsCmd.Flags().BoolVar(&statsOpts.Titles, "titles", false, "Break totals down by title")

	// Config commands
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand(r.app).Show()
		},
	})
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand(r.app).Init(force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	r.cmd.AddCommand(
		startCmd,
		addCmd,
		goalCmd,
		finishCmd,
		statsCmd,
		configCmd,
	)
}

// setup loads configuration with flag overrides and builds the app
func (r *RootCommand) setup() error {
	flags := r.cmd.PersistentFlags()

	path := config.DefaultConfigPath()
	if p, _ := flags.GetString("config"); p != "" {
		path = p
	}

	loader := config.NewLoaderWithFile(path)
	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	if cfg.Application.Verbose {
		logging.SetVerbose(true)
	}
	logging.Debugf("config loaded from %s: backend=%s dir=%s\n", loader.Path(), cfg.Storage.Backend, cfg.Storage.Dir)

	app, release, err := r.factory(cfg)
	if err != nil {
		return err
	}
	if app.config == nil {
		app.config = cfg
	}
	app.WithConfigPath(loader.Path())
	if r.out != nil {
		app.WithOutput(r.out)
	}
	r.app = app
	r.release = release
	return nil
}

// getOverridesFromFlags collects the global flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	overrides.StorageDir = stringFlag("data-dir")
	overrides.Backend = stringFlag("backend")
	overrides.Clock = stringFlag("clock")
	overrides.ClockLength = stringFlag("clock-length")
	if flags.Changed("bar-width") {
		v, _ := flags.GetInt("bar-width")
		overrides.BarWidth = &v
	}
	overrides.Countdown = boolFlag("countdown")
	overrides.EstimateBar = boolFlag("estimate-bar")
	overrides.AutoSave = boolFlag("auto-save")
	overrides.WorkPerDay = stringFlag("work-per-day")
	overrides.Verbose = boolFlag("verbose")

	return overrides
}

// titleFrom prefers the flag value, falling back to the joined positional words
func titleFrom(flag string, args []string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return strings.Join(args, " ")
}

