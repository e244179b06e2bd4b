// Package loop drives a game at a fixed cadence: render, poll input,
// step, sleep. It is strictly sequential; the sleep is the only point where
// the loop blocks.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term-snake/internal/core"
)

// Game is what the loop needs from the simulation.
type Game interface {
	// Title returns the display name.
	Title() string

	// Bounds returns the size of the screen the game draws into.
	Bounds() (width, height int)

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// Footer returns the line printed under the grid.
	Footer() string

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult
}

// Terminal is the I/O adapter the loop renders to and polls from.
type Terminal interface {
	// PollKey returns the next pending key without blocking.
	PollKey() (core.Action, bool)

	// Render writes a complete frame.
	Render(frame string) error
}

// ExitStatus describes how a run ended.
type ExitStatus int

const (
	ExitGameOver ExitStatus = iota
	ExitInterrupted
	ExitError
)

// String returns a human-readable name for the status.
func (s ExitStatus) String() string {
	switch s {
	case ExitGameOver:
		return "game_over"
	case ExitInterrupted:
		return "interrupted"
	case ExitError:
		return "error"
	default:
		return "unknown"
	}
}

// Code returns the process exit code for the status.
func (s ExitStatus) Code() int {
	switch s {
	case ExitGameOver:
		return 0
	case ExitInterrupted:
		return 130
	default:
		return 1
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config controls the loop cadence and presentation.
type Config struct {
	// Tick is the fixed delay after each update. Defaults to 100ms.
	Tick time.Duration

	// Style turns the rendered screen into the frame body.
	// Defaults to the plain (*core.Screen).String.
	Style func(*core.Screen) string

	// Sleep replaces the real timer, mainly for tests.
	Sleep SleepFunc

	// Logger receives session events. Defaults to a discarding logger.
	Logger *log.Logger
}

// WithDefaults fills unset fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.Tick <= 0 {
		c.Tick = 100 * time.Millisecond
	}
	if c.Style == nil {
		c.Style = (*core.Screen).String
	}
	if c.Sleep == nil {
		c.Sleep = Sleep
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

// Run plays g on t until the game ends or ctx is cancelled.
// The final frame shown is the one rendered at the top of the losing tick.
func Run(ctx context.Context, g Game, t Terminal, cfg Config) (ExitStatus, error) {
	cfg = cfg.WithDefaults()
	logger := cfg.Logger

	screen := core.NewScreen(g.Bounds())
	input := core.NewInputFrame()
	var ticks uint64

	logger.Info("session started", "game", g.Title(), "tick", cfg.Tick)

	for {
		screen.Clear()
		g.Render(screen)
		if err := t.Render(core.Frame(cfg.Style(screen), g.Footer())); err != nil {
			return ExitError, fmt.Errorf("loop: render frame: %w", err)
		}

		input.Clear()
		if action, ok := t.PollKey(); ok {
			input.Set(action)
			logger.Debug("key", "action", action)
		}

		res := g.Step(input)
		ticks++
		if res.Ate {
			logger.Debug("fruit eaten", "tick", ticks, "score", res.State.Score)
		}

		// A game that just ended is reported as over even if the final
		// sleep was cut short.
		if err := cfg.Sleep(ctx, cfg.Tick); err != nil && !res.State.GameOver {
			logger.Info("session interrupted", "ticks", ticks, "score", res.State.Score)
			return ExitInterrupted, nil
		}

		if res.State.GameOver {
			logger.Info("game over",
				"ticks", ticks,
				"score", res.State.Score,
				"collision", res.Collision,
			)
			return ExitGameOver, nil
		}
	}
}

// Sleep waits for d using a timer, returning early with ctx.Err() when the
// context is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsInterrupt reports whether err came from a cancelled or expired context.
func IsInterrupt(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
