package loop

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/games/snake"
)

type fakeTerminal struct {
	keys      []core.Action
	frames    []string
	polls     int
	renderErr error
}

func (f *fakeTerminal) PollKey() (core.Action, bool) {
	f.polls++
	if len(f.keys) == 0 {
		return core.ActionNone, false
	}
	a := f.keys[0]
	f.keys = f.keys[1:]
	return a, true
}

func (f *fakeTerminal) Render(frame string) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.frames = append(f.frames, frame)
	return nil
}

type fakeSleeper struct {
	calls    int
	durs     []time.Duration
	cancelAt int // 1-based call that reports cancellation, 0 = never
}

func (s *fakeSleeper) sleep(_ context.Context, d time.Duration) error {
	s.calls++
	s.durs = append(s.durs, d)
	if s.cancelAt > 0 && s.calls == s.cancelAt {
		return context.Canceled
	}
	return nil
}

func newGame(t *testing.T) *snake.Game {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 99

	g := snake.New()
	g.Reset(cfg)
	return g
}

func TestRunUntilWall(t *testing.T) {
	g := newGame(t)
	term := &fakeTerminal{}
	sleeper := &fakeSleeper{}

	status, err := Run(context.Background(), g, term, Config{Sleep: sleeper.sleep})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if status != ExitGameOver {
		t.Errorf("status = %v, expected game_over", status)
	}

	// Head moves from x=10 to x=19 in nine ticks.
	if len(term.frames) != 9 {
		t.Errorf("Expected 9 frames, got %d", len(term.frames))
	}
	if sleeper.calls != 9 {
		t.Errorf("Expected 9 sleeps, got %d", sleeper.calls)
	}
	if term.polls != 9 {
		t.Errorf("Expected 9 polls, got %d", term.polls)
	}

	snap := g.Snapshot()
	if snap.HeadX != 19 || snap.Collision != "wall" {
		t.Errorf("Unexpected final state %+v", snap)
	}
}

func TestRunAppliesInput(t *testing.T) {
	g := newGame(t)
	term := &fakeTerminal{keys: []core.Action{core.ActionUp}}
	sleeper := &fakeSleeper{}

	status, err := Run(context.Background(), g, term, Config{Sleep: sleeper.sleep})
	if err != nil || status != ExitGameOver {
		t.Fatalf("Run() = (%v, %v)", status, err)
	}

	snap := g.Snapshot()
	if snap.HeadX != 10 || snap.HeadY != 0 {
		t.Errorf("Head should hit the top wall at (10,0), got (%d,%d)", snap.HeadX, snap.HeadY)
	}
	if len(term.frames) != 10 {
		t.Errorf("Expected 10 frames, got %d", len(term.frames))
	}
}

func TestRunGameOverWinsOverLateCancel(t *testing.T) {
	g := newGame(t)
	term := &fakeTerminal{}
	// The ninth tick hits the wall; its sleep reports cancellation.
	sleeper := &fakeSleeper{cancelAt: 9}

	status, err := Run(context.Background(), g, term, Config{Sleep: sleeper.sleep})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if status != ExitGameOver {
		t.Errorf("status = %v, expected game_over", status)
	}
}

func TestRunLogsSession(t *testing.T) {
	g := newGame(t)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	cfg := Config{Sleep: (&fakeSleeper{}).sleep, Logger: logger}
	if _, err := Run(context.Background(), g, &fakeTerminal{}, cfg); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"session started", "game=Snake", "game over", "collision=wall"} {
		if !strings.Contains(out, want) {
			t.Errorf("Log missing %q:\n%s", want, out)
		}
	}
}

func TestRunFirstFrame(t *testing.T) {
	g := newGame(t)
	want := g.Frame()
	term := &fakeTerminal{}

	if _, err := Run(context.Background(), g, term, Config{Sleep: (&fakeSleeper{}).sleep}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if term.frames[0] != want {
		t.Errorf("First frame should show the initial state:\n%s\ngot\n%s", want, term.frames[0])
	}
	if !strings.HasSuffix(term.frames[0], snake.Trailer+"\n") {
		t.Error("Frame should end with the trailer")
	}
}

func TestRunInterrupted(t *testing.T) {
	g := newGame(t)
	term := &fakeTerminal{}
	sleeper := &fakeSleeper{cancelAt: 3}

	status, err := Run(context.Background(), g, term, Config{Sleep: sleeper.sleep})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if status != ExitInterrupted {
		t.Errorf("status = %v, expected interrupted", status)
	}
	if len(term.frames) != 3 {
		t.Errorf("Expected 3 frames, got %d", len(term.frames))
	}
}

func TestRunRenderError(t *testing.T) {
	g := newGame(t)
	boom := errors.New("broken pipe")
	term := &fakeTerminal{renderErr: boom}

	status, err := Run(context.Background(), g, term, Config{Sleep: (&fakeSleeper{}).sleep})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, expected wrapped %v", err, boom)
	}
	if status != ExitError {
		t.Errorf("status = %v, expected error", status)
	}
	if term.polls != 0 {
		t.Error("Loop should stop before polling when rendering fails")
	}
}

func TestRunTickAndStyle(t *testing.T) {
	g := newGame(t)
	term := &fakeTerminal{}
	sleeper := &fakeSleeper{cancelAt: 1}

	cfg := Config{
		Tick:  250 * time.Millisecond,
		Style: func(*core.Screen) string { return "styled" },
		Sleep: sleeper.sleep,
	}
	if _, err := Run(context.Background(), g, term, cfg); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if term.frames[0] != "styled\n"+snake.Trailer+"\n" {
		t.Errorf("Unexpected styled frame %q", term.frames[0])
	}
	if sleeper.durs[0] != 250*time.Millisecond {
		t.Errorf("Sleep duration = %v, expected 250ms", sleeper.durs[0])
	}
}

func TestDefaultTick(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Tick != 100*time.Millisecond {
		t.Errorf("Default tick = %v, expected 100ms", cfg.Tick)
	}
}

func TestSleep(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() = %v, expected nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := Sleep(ctx, time.Hour)
	if !IsInterrupt(err) {
		t.Errorf("Sleep() on cancelled context = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep should return promptly when cancelled")
	}
}

func TestExitStatusCode(t *testing.T) {
	tests := []struct {
		status ExitStatus
		code   int
		name   string
	}{
		{ExitGameOver, 0, "game_over"},
		{ExitInterrupted, 130, "interrupted"},
		{ExitError, 1, "error"},
	}
	for _, tc := range tests {
		if tc.status.Code() != tc.code {
			t.Errorf("%v.Code() = %d, expected %d", tc.status, tc.status.Code(), tc.code)
		}
		if tc.status.String() != tc.name {
			t.Errorf("String() = %q, expected %q", tc.status.String(), tc.name)
		}
	}
}
