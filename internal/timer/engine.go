package timer

import (
	"context"
	"fmt"
	"io"
	"time"

	"focus-tracker/internal/duration"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/logging"
	"focus-tracker/internal/render"
	"focus-tracker/internal/services"
)

const (
	pollInterval = 100 * time.Millisecond
	pauseKey     = ' '
	interruptKey = 0x03 // Ctrl+C when the terminal does not turn it into a signal

	pausedPrompt = "Paused. (save | discard | resume | quit)"
)

// Options are the per-session settings
type Options struct {
	Title    string
	Nickname string
	AutoSave bool
}

// Engine drives one session from start to a terminal state
type Engine struct {
	clock  Clock
	input  Input
	mode   InputMode
	saver  SessionSaver
	policy *render.Policy
	screen *render.Screen
	out    io.Writer
	opts   Options

	state        State
	start        time.Time
	runStarted   time.Time
	pauseStarted time.Time
	accumulated  time.Duration
	lastKey      int
}

// NewEngine creates an engine. Output goes to out.
func NewEngine(clock Clock, input Input, mode InputMode, saver SessionSaver, policy *render.Policy, out io.Writer, opts Options) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		clock:  clock,
		input:  input,
		mode:   mode,
		saver:  saver,
		policy: policy,
		screen: render.NewScreen(out),
		out:    out,
		opts:   opts,
	}
}

// State returns the current state
func (e *Engine) State() State {
	return e.state
}

// Elapsed returns the accumulated running time at now, excluding pauses
func (e *Engine) Elapsed(now time.Time) time.Duration {
	if e.state == Running {
		return e.accumulated + now.Sub(e.runStarted)
	}
	return e.accumulated
}

func (e *Engine) elapsedSeconds(now time.Time) int {
	return int(e.Elapsed(now) / time.Second)
}

// Run starts the session and blocks until it is saved, discarded or interrupted.
// Cancelling ctx interrupts the session.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.start = e.clock.Now()
	e.runStarted = e.start
	e.state = Running
	e.lastKey = -1

	for _, line := range render.Header(e.start, e.opts.Nickname, e.opts.Title) {
		e.println(line)
	}

	defer func() {
		if err := e.mode.Restore(); err != nil {
			logging.Debugf("restore input mode: %v\n", err)
		}
	}()
	if err := e.mode.Enter(); err != nil {
		return nil, errors.NewTerminalModeError("enter single-key mode", err)
	}

	for {
		select {
		case <-ctx.Done():
			return e.interrupt(ctx)
		default:
		}

		var (
			result *Result
			err    error
		)
		switch e.state {
		case Running:
			result, err = e.stepRunning(ctx)
		case Paused:
			result, err = e.stepPaused(ctx)
		}
		if result != nil || err != nil {
			return result, err
		}
	}
}

func (e *Engine) stepRunning(ctx context.Context) (*Result, error) {
	elapsed := e.elapsedSeconds(e.clock.Now())
	if key := e.policy.Key(elapsed, false); key != e.lastKey {
		if _, err := e.screen.Draw(e.policy.Lines(elapsed, false)); err != nil {
			return nil, errors.NewTerminalModeError("draw", err)
		}
		e.lastKey = key
	}

	key, ok, err := e.input.ReadKey(pollInterval)
	if err == io.EOF {
		return e.interrupt(ctx)
	}
	if err != nil {
		return nil, errors.NewTerminalModeError("read key", err)
	}
	if !ok {
		return nil, nil
	}

	switch key {
	case pauseKey:
		return nil, e.pause()
	case interruptKey:
		return e.interrupt(ctx)
	}
	return nil, nil
}

func (e *Engine) stepPaused(ctx context.Context) (*Result, error) {
	line, ok, err := e.input.ReadLine(pollInterval)
	if err == io.EOF {
		return e.interrupt(ctx)
	}
	if err != nil {
		return nil, errors.NewTerminalModeError("read line", err)
	}
	if !ok {
		return nil, nil
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		e.println(err.Error())
		e.prompt()
		return nil, nil
	}

	switch cmd.Action {
	case ActionSave:
		title := cmd.Title
		if title == "" {
			title = e.opts.Title
		}
		return e.save(ctx, title)
	case ActionDiscard:
		e.state = Discarded
		e.println("Session cancelled; nothing saved.")
		return e.result(nil), nil
	case ActionResume:
		return nil, e.resume()
	case ActionQuit:
		if e.opts.AutoSave {
			return e.save(ctx, e.opts.Title)
		}
		e.state = Discarded
		e.println("Exited without saving.")
		return e.result(nil), nil
	default:
		e.println("Unknown command: " + line)
		e.prompt()
		return nil, nil
	}
}

func (e *Engine) pause() error {
	now := e.clock.Now()
	e.accumulated += now.Sub(e.runStarted)
	e.pauseStarted = now
	e.state = Paused
	logging.Debugf("paused after %s\n", e.accumulated)

	if _, err := e.screen.Draw(e.policy.Lines(e.elapsedSeconds(now), true)); err != nil {
		return errors.NewTerminalModeError("draw", err)
	}
	if err := e.screen.Release(); err != nil {
		return errors.NewTerminalModeError("draw", err)
	}
	if err := e.mode.Restore(); err != nil {
		return errors.NewTerminalModeError("restore line mode", err)
	}
	e.prompt()
	return nil
}

func (e *Engine) resume() error {
	now := e.clock.Now()
	pausedFor := int(now.Sub(e.pauseStarted) / time.Second)
	e.println(fmt.Sprintf("Paused for %s, resuming at %s", duration.FormatClock(pausedFor), now.Format("15:04:05")))

	if err := e.mode.Enter(); err != nil {
		return errors.NewTerminalModeError("enter single-key mode", err)
	}
	e.runStarted = now
	e.state = Running
	e.lastKey = -1
	return nil
}

// save persists the accumulated time. A failure leaves the session paused so the user can retry.
func (e *Engine) save(ctx context.Context, title string) (*Result, error) {
	end := e.clock.Now()
	seconds := e.elapsedSeconds(end)

	saved, err := e.saver.Record(ctx, title, e.start, end, seconds)
	if err != nil {
		if e.state == Paused {
			e.println("Could not save: " + errors.GetUserMessage(err))
			e.prompt()
			return nil, nil
		}
		return nil, err
	}

	e.state = Saved
	e.println("Saved session: " + duration.FormatClock(seconds))
	e.println("Saved to: " + saved.Location)
	return e.result(saved), nil
}

func (e *Engine) interrupt(ctx context.Context) (*Result, error) {
	now := e.clock.Now()
	if e.state == Running {
		e.accumulated += now.Sub(e.runStarted)
		e.runStarted = now
	}
	e.state = Interrupted
	logging.Debugf("interrupted after %s\n", e.accumulated)

	if err := e.screen.Release(); err != nil {
		logging.Debugf("release screen: %v\n", err)
	}
	if !e.opts.AutoSave {
		e.println("Interrupted. Use --auto-save to save on Ctrl+C.")
		return e.result(nil), nil
	}

	saved, err := e.saver.Record(context.WithoutCancel(ctx), e.opts.Title, e.start, now, e.elapsedSeconds(now))
	if err != nil {
		return nil, err
	}
	e.println("Saved session: " + duration.FormatClock(saved.Session.DurationSeconds))
	e.println("Saved to: " + saved.Location)
	return e.result(saved), nil
}

func (e *Engine) result(saved *services.SaveResult) *Result {
	return &Result{
		State:          e.state,
		ElapsedSeconds: int(e.accumulated / time.Second),
		Saved:          saved,
	}
}

func (e *Engine) prompt() {
	fmt.Fprintf(e.out, "%s\n> ", pausedPrompt)
}

func (e *Engine) println(line string) {
	fmt.Fprintln(e.out, line)
}
