// snake is the classic snake game played in the terminal.
//
// Usage:
//
//	snake                 - Play (same as "snake play")
//	snake play            - Play a game
//	snake config          - Print the effective configuration as YAML
//
// Global flags:
//
//	--config <path>       - Path to a custom config YAML
//	--width, --height     - Grid size including the wall ring (default: 20x20)
//	--tick <duration>     - Delay between ticks (default: 100ms)
//	--seed <value>        - RNG seed for fruit placement (0 = time based)
//	--block-reversal      - Ignore turns straight back into the body
//	--color               - Colour walls, fruit and snake
//	--ui <console|tea>    - Front-end (default: console)
//	--log-file <path>     - Write logs to a file (default: discarded)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig        string
	flagWidth         int
	flagHeight        int
	flagTick          time.Duration
	flagSeed          int64
	flagBlockReversal bool
	flagColor         bool
	flagUI            string
	flagLogFile       string
	flagLogLevel      string
)

// exitCode is set by the play command once a session has ended.
var exitCode int

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake moves on a walled grid, eats fruit to grow, and the game ends
when it runs into a wall or itself.

Controls:
  Arrow keys - Turn
  Ctrl+C     - Quit

Examples:
  snake
  snake --width 30 --height 15 --tick 80ms
  snake --seed 42 --color
  snake --ui tea
  snake config > ~/.snake/configs/snake.yaml`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "Grid width including walls (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "Grid height including walls (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Delay between ticks (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagBlockReversal, "block-reversal", false, "Ignore turns straight back into the body")
	rootCmd.PersistentFlags().BoolVar(&flagColor, "color", false, "Colour walls, fruit and snake")
	rootCmd.PersistentFlags().StringVar(&flagUI, "ui", uiConsole, "Front-end: console or tea")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
}
