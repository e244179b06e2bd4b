package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/term-snake/internal/games/snake"
	"github.com/vovakirdan/term-snake/internal/platform/console"
	"github.com/vovakirdan/term-snake/internal/platform/loop"
	"github.com/vovakirdan/term-snake/internal/platform/tui"
)

const (
	uiConsole = "console"
	uiTea     = "tea"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the current terminal.

The console front-end draws plain frames on stdout and reads arrow keys
without echo. Ctrl+C ends the session and restores the terminal.
The tea front-end runs the same game in the alternate screen; q also quits.

Exit codes:
  0   - Game over
  130 - Interrupted
  1   - Startup or terminal error

Examples:
  snake play
  snake play --config ./my-snake.yaml
  snake play --ui tea --color`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rt, err := cfg.Runtime()
	if err != nil {
		return err
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	game := snake.New()
	game.Reset(rt)

	logger, closeLog, err := newLogger(flagLogFile, flagLogLevel, game.ID())
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("config loaded",
		"source", source,
		"grid", fmt.Sprintf("%dx%d", rt.GridW, rt.GridH),
		"tick", rt.Tick,
		"seed", rt.Seed,
		"block_reversal", rt.BlockReversal,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopCfg := loop.Config{
		Tick:   rt.Tick,
		Logger: logger,
	}
	if flagColor {
		loopCfg.Style = tui.RenderScreen
	}

	var status loop.ExitStatus
	switch flagUI {
	case uiConsole:
		status, err = playConsole(ctx, game, loopCfg, logger)
	case uiTea:
		status, err = tui.Run(ctx, game, loopCfg)
	default:
		return fmt.Errorf("unknown --ui %q (want %s or %s)", flagUI, uiConsole, uiTea)
	}
	if err != nil {
		logger.Error("session failed", "error", err)
		return err
	}

	state := game.State()
	logger.Info("session ended", "status", status, "score", state.Score)
	logger.Debug("final state\n" + game.DebugState())

	exitCode = finishSession(cmd.OutOrStdout(), status)
	return nil
}

// finishSession prints the closing message once the terminal is back to
// normal and returns the process exit code for status.
func finishSession(w io.Writer, status loop.ExitStatus) int {
	if status == loop.ExitGameOver {
		fmt.Fprintln(w, "Game Over!")
	}
	return status.Code()
}

// playConsole runs the game on the controlling terminal. The terminal is
// restored before returning on every path.
func playConsole(ctx context.Context, game *snake.Game, cfg loop.Config, logger *log.Logger) (loop.ExitStatus, error) {
	sess, err := console.Open(os.Stdin, os.Stdout)
	if err != nil {
		return loop.ExitError, err
	}
	defer sess.Close()
	logger.Debug("terminal acquired")

	// The frame is the grid plus the trailer line.
	w, h := game.Bounds()
	if err := sess.Fits(w, h+1); err != nil {
		return loop.ExitError, err
	}

	status, runErr := loop.Run(ctx, game, sess, cfg)

	if err := sess.Close(); err != nil {
		logger.Warn("could not restore terminal", "error", err)
		if runErr == nil {
			return loop.ExitError, err
		}
	}
	logger.Debug("terminal restored")

	return status, runErr
}
