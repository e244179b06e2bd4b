package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  20,
			Height: 20,
		},
		Tick:          100 * time.Millisecond,
		Seed:          0,
		BlockReversal: false,
		Glyphs: GlyphConfig{
			Wall:  "#",
			Fruit: "F",
			Snake: "O",
			Empty: " ",
		},
		Colors: ColorConfig{
			Wall:  "gray",
			Fruit: "bright_red",
			Snake: "bright_green",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
