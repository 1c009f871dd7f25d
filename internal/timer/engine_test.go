package timer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"focus-tracker/internal/domain"
	"focus-tracker/internal/errors"
	"focus-tracker/internal/render"
	"focus-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// event is one scripted input; the clock advances before it is delivered
type event struct {
	advance time.Duration
	key     byte
	line    string
	isLine  bool
	idle    bool // poll times out
	before  func()
}

func key(advance time.Duration, k byte) event { return event{advance: advance, key: k} }
func line(advance time.Duration, l string) event {
	return event{advance: advance, line: l, isLine: true}
}
func idle(advance time.Duration) event { return event{advance: advance, idle: true} }

type scriptedInput struct {
	clock  *fakeClock
	events []event
}

func (s *scriptedInput) next(wantLine bool) (event, error) {
	if len(s.events) == 0 {
		return event{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	if ev.before != nil {
		ev.before()
	}
	s.clock.now = s.clock.now.Add(ev.advance)
	if !ev.idle && ev.isLine != wantLine {
		return event{}, fmt.Errorf("script out of order: line=%v wanted line=%v", ev.isLine, wantLine)
	}
	return ev, nil
}

func (s *scriptedInput) ReadKey(time.Duration) (byte, bool, error) {
	ev, err := s.next(false)
	if err != nil || ev.idle {
		return 0, false, err
	}
	return ev.key, true, nil
}

func (s *scriptedInput) ReadLine(time.Duration) (string, bool, error) {
	ev, err := s.next(true)
	if err != nil || ev.idle {
		return "", false, err
	}
	return ev.line, true, nil
}

type fakeMode struct {
	entered  bool
	enters   int
	restores int
	enterErr error
}

func (m *fakeMode) Enter() error {
	m.enters++
	if m.enterErr != nil {
		return m.enterErr
	}
	m.entered = true
	return nil
}

func (m *fakeMode) Restore() error {
	m.restores++
	m.entered = false
	return nil
}

type recordingSaver struct {
	calls []domain.Session
	err   error
	ctxOK bool
}

func (r *recordingSaver) Record(ctx context.Context, title string, start, end time.Time, seconds int) (*services.SaveResult, error) {
	r.ctxOK = ctx.Err() == nil
	if r.err != nil {
		err := r.err
		r.err = nil
		return nil, err
	}
	session := domain.NewSession(title, start, end, seconds)
	r.calls = append(r.calls, session)
	return &services.SaveResult{Session: session, Location: "/tmp/sessions.csv"}, nil
}

type harness struct {
	clock *fakeClock
	input *scriptedInput
	mode  *fakeMode
	saver *recordingSaver
	out   *bytes.Buffer
	start time.Time
}

func newHarness(events ...event) *harness {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	clock := &fakeClock{now: start}
	return &harness{
		clock: clock,
		input: &scriptedInput{clock: clock, events: events},
		mode:  &fakeMode{},
		saver: &recordingSaver{},
		out:   &bytes.Buffer{},
		start: start,
	}
}

func (h *harness) run(t *testing.T, ctx context.Context, opts Options) (*Result, error) {
	t.Helper()
	policy := render.NewPolicy(render.Options{Mode: render.ModeDigital})
	engine := NewEngine(h.clock, h.input, h.mode, h.saver, policy, h.out, opts)
	result, err := engine.Run(ctx)
	assert.False(t, h.mode.entered, "input mode is restored on exit")
	return result, err
}

func TestEngine_PauseResumeSave(t *testing.T) {
	h := newHarness(
		idle(10*time.Minute),
		key(0, ' '),
		line(5*time.Minute, "resume"),
		idle(15*time.Minute),
		key(0, ' '),
		line(time.Minute, "save"),
	)

	result, err := h.run(t, context.Background(), Options{Title: "writing"})
	require.NoError(t, err)

	assert.Equal(t, Saved, result.State)
	assert.Equal(t, 1500, result.ElapsedSeconds, "pauses are excluded")
	require.Len(t, h.saver.calls, 1)

	saved := h.saver.calls[0]
	assert.Equal(t, "writing", saved.Title)
	assert.Equal(t, 1500, saved.DurationSeconds)
	assert.True(t, h.start.Equal(saved.Start))
	assert.True(t, h.start.Add(31*time.Minute).Equal(saved.End))

	output := h.out.String()
	assert.Contains(t, output, "Press Space to pause.")
	assert.Contains(t, output, "Paused for 05:00, resuming at 09:15:00")
	assert.Contains(t, output, "Saved session: 25:00")
	assert.Contains(t, output, "Saved to: /tmp/sessions.csv")
	assert.Equal(t, 2, h.mode.enters)
}

func TestEngine_SaveTitles(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		title    string
		expected string
	}{
		{name: "should keep the session title", command: "s", title: "writing", expected: "writing"},
		{name: "should take a positional title", command: "save deep work", title: "writing", expected: "deep work"},
		{name: "should take a quoted flag title", command: `save --title "deep work"`, expected: "deep work"},
		{name: "should prefer the flag over the positional", command: "save draft -t final", expected: "final"},
		{name: "should accept upper case", command: "SAVE", title: "x", expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(idle(time.Minute), key(0, ' '), line(0, tt.command))

			result, err := h.run(t, context.Background(), Options{Title: tt.title})
			require.NoError(t, err)
			require.Equal(t, Saved, result.State)
			require.Len(t, h.saver.calls, 1)
			assert.Equal(t, tt.expected, h.saver.calls[0].Title)
		})
	}
}

func TestEngine_EndStates(t *testing.T) {
	tests := []struct {
		name          string
		command       string
		autoSave      bool
		expectedState State
		expectedSaves int
		expectedText  string
	}{
		{name: "should discard", command: "discard", expectedState: Discarded, expectedText: "Session cancelled; nothing saved."},
		{name: "should cancel", command: "cancel", expectedState: Discarded, expectedText: "Session cancelled; nothing saved."},
		{name: "should quit without saving", command: "quit", expectedState: Discarded, expectedText: "Exited without saving."},
		{name: "should quit and save with auto-save", command: "q", autoSave: true, expectedState: Saved, expectedSaves: 1, expectedText: "Saved session: 02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(idle(2*time.Minute), key(0, ' '), line(0, tt.command))

			result, err := h.run(t, context.Background(), Options{AutoSave: tt.autoSave})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, result.State)
			assert.Equal(t, 120, result.ElapsedSeconds)
			assert.Len(t, h.saver.calls, tt.expectedSaves)
			assert.Contains(t, h.out.String(), tt.expectedText)
		})
	}
}

func TestEngine_UnknownCommandStaysPaused(t *testing.T) {
	h := newHarness(
		idle(time.Minute),
		key(0, ' '),
		line(0, "sav"),
		line(0, `save "unterminated`),
		line(0, "discard"),
	)

	result, err := h.run(t, context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Discarded, result.State)
	assert.Contains(t, h.out.String(), "Unknown command: sav")
	assert.Contains(t, h.out.String(), "unterminated")
}

func TestEngine_EmptyLineResumes(t *testing.T) {
	h := newHarness(
		idle(time.Minute),
		key(0, ' '),
		line(time.Minute, ""),
		idle(time.Minute),
		key(0, ' '),
		line(0, "save"),
	)

	result, err := h.run(t, context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 120, result.ElapsedSeconds)
}

func TestEngine_SaveFailureStaysPaused(t *testing.T) {
	h := newHarness(idle(time.Minute), key(0, ' '), line(0, "save"), line(0, "save"))
	h.saver.err = errors.NewStorageError("append session", io.ErrShortWrite)

	result, err := h.run(t, context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Saved, result.State)
	assert.Len(t, h.saver.calls, 1)
	assert.Contains(t, h.out.String(), "Could not save")
}

func TestEngine_Interrupt(t *testing.T) {
	t.Run("should not save without auto-save", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h := newHarness(idle(3*time.Minute), event{idle: true, before: cancel})

		result, err := h.run(t, ctx, Options{})
		require.NoError(t, err)
		assert.Equal(t, Interrupted, result.State)
		assert.Equal(t, 180, result.ElapsedSeconds)
		assert.Empty(t, h.saver.calls)
		assert.Contains(t, h.out.String(), "Interrupted. Use --auto-save to save on Ctrl+C.")
	})

	t.Run("should save the running span with auto-save", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h := newHarness(idle(3*time.Minute), event{idle: true, before: cancel})

		result, err := h.run(t, ctx, Options{AutoSave: true, Title: "reading"})
		require.NoError(t, err)
		assert.Equal(t, Interrupted, result.State)
		require.Len(t, h.saver.calls, 1)
		assert.Equal(t, 180, h.saver.calls[0].DurationSeconds)
		assert.True(t, h.saver.ctxOK, "saving ignores the cancelled context")
		require.NotNil(t, result.Saved)
	})

	t.Run("should exclude the pause when interrupted while paused", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h := newHarness(idle(time.Minute), key(0, ' '), event{advance: 10 * time.Minute, idle: true, before: cancel})

		result, err := h.run(t, ctx, Options{AutoSave: true})
		require.NoError(t, err)
		require.Len(t, h.saver.calls, 1)
		assert.Equal(t, 60, h.saver.calls[0].DurationSeconds)
		assert.Equal(t, 60, result.ElapsedSeconds)
	})

	t.Run("should treat end of input as an interrupt", func(t *testing.T) {
		h := newHarness(idle(time.Minute))

		result, err := h.run(t, context.Background(), Options{})
		require.NoError(t, err)
		assert.Equal(t, Interrupted, result.State)
	})

	t.Run("should treat a raw Ctrl+C key as an interrupt", func(t *testing.T) {
		h := newHarness(idle(time.Minute), key(0, 0x03))

		result, err := h.run(t, context.Background(), Options{})
		require.NoError(t, err)
		assert.Equal(t, Interrupted, result.State)
	})
}

func TestEngine_EnterFailure(t *testing.T) {
	h := newHarness()
	h.mode.enterErr = io.ErrClosedPipe

	_, err := h.run(t, context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTerminalMode))
	assert.Equal(t, 1, h.mode.restores, "restore is attempted after a failed enter")
}

func TestEngine_RedrawsOnlyOnChange(t *testing.T) {
	h := newHarness(
		idle(0),
		idle(100*time.Millisecond),
		idle(100*time.Millisecond),
		idle(800*time.Millisecond),
		key(0, ' '),
		line(0, "discard"),
	)

	_, err := h.run(t, context.Background(), Options{})
	require.NoError(t, err)

	output := h.out.String()
	assert.Equal(t, 1, strings.Count(output, "\x1b[2K  00:00"))
	assert.Equal(t, 1, strings.Count(output, "\x1b[2K  00:01"), "the identical paused frame is skipped")
}

func TestEngine_Elapsed(t *testing.T) {
	h := newHarness()
	engine := NewEngine(h.clock, h.input, h.mode, h.saver, render.NewPolicy(render.Options{}), h.out, Options{})
	engine.state = Running
	engine.runStarted = h.start
	engine.accumulated = 90 * time.Second

	assert.Equal(t, 150*time.Second, engine.Elapsed(h.start.Add(time.Minute)))

	engine.state = Paused
	assert.Equal(t, 90*time.Second, engine.Elapsed(h.start.Add(time.Hour)))
}
