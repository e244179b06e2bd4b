package core

import "time"

// Glyphs are the runes used to draw each kind of cell.
type Glyphs struct {
	Wall  rune
	Fruit rune
	Snake rune
	Empty rune
}

// Palette holds the colors applied to glyphs when color output is enabled.
type Palette struct {
	Wall  Color
	Fruit Color
	Snake Color
}

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	GridW         int           // Grid width in cells, outer ring included
	GridH         int           // Grid height in cells, outer ring included
	Tick          time.Duration // Fixed delay between ticks
	Seed          int64         // RNG seed for fruit placement
	BlockReversal bool          // Ignore input that turns straight back into the neck
	Glyphs        Glyphs
	Palette       Palette
}

// DefaultConfig returns a RuntimeConfig with the classic 20x20 layout.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW: 20,
		GridH: 20,
		Tick:  100 * time.Millisecond,
		Seed:  0, // 0 means use current time in the command layer
		Glyphs: Glyphs{
			Wall:  '#',
			Fruit: 'F',
			Snake: 'O',
			Empty: ' ',
		},
		Palette: Palette{
			Wall:  ColorGray,
			Fruit: ColorBrightRed,
			Snake: ColorBrightGreen,
		},
	}
}

// Collision describes why a tick ended the game.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

// String returns a human-readable name for the collision.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Fruit eaten so far
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State     GameState
	Ate       bool      // Fruit was eaten this tick
	Collision Collision // Set on the tick that ended the game
}
