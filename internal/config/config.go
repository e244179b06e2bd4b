// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/term-snake/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid          GridConfig    `yaml:"grid"`
	Tick          time.Duration `yaml:"tick"`
	Seed          int64         `yaml:"seed"`
	BlockReversal bool          `yaml:"block_reversal"`
	Glyphs        GlyphConfig   `yaml:"glyphs"`
	Colors        ColorConfig   `yaml:"colors"`
}

// GridConfig defines the playfield size, wall ring included.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GlyphConfig defines the single-character glyph for each cell kind.
type GlyphConfig struct {
	Wall  string `yaml:"wall"`
	Fruit string `yaml:"fruit"`
	Snake string `yaml:"snake"`
	Empty string `yaml:"empty"`
}

// ColorConfig names the colors used with --color.
type ColorConfig struct {
	Wall  string `yaml:"wall"`
	Fruit string `yaml:"fruit"`
	Snake string `yaml:"snake"`
}

// Validate checks that the config describes a playable game.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width < 3 || c.Grid.Height < 3 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 3x3", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %s", ErrInvalid, c.Tick)
	}

	glyphs := []struct{ name, value string }{
		{"wall", c.Glyphs.Wall},
		{"fruit", c.Glyphs.Fruit},
		{"snake", c.Glyphs.Snake},
		{"empty", c.Glyphs.Empty},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("%w: glyph %s must be one character, got %q", ErrInvalid, g.name, g.value)
		}
	}

	colors := []struct{ name, value string }{
		{"wall", c.Colors.Wall},
		{"fruit", c.Colors.Fruit},
		{"snake", c.Colors.Snake},
	}
	for _, col := range colors {
		if _, ok := core.ParseColor(col.value); !ok {
			return fmt.Errorf("%w: unknown %s color %q", ErrInvalid, col.name, col.value)
		}
	}
	return nil
}

// Runtime validates the config and converts it to a core.RuntimeConfig.
func (c SnakeConfig) Runtime() (core.RuntimeConfig, error) {
	if err := c.Validate(); err != nil {
		return core.RuntimeConfig{}, err
	}

	wall, _ := core.ParseColor(c.Colors.Wall)
	fruit, _ := core.ParseColor(c.Colors.Fruit)
	snake, _ := core.ParseColor(c.Colors.Snake)

	return core.RuntimeConfig{
		GridW:         c.Grid.Width,
		GridH:         c.Grid.Height,
		Tick:          c.Tick,
		Seed:          c.Seed,
		BlockReversal: c.BlockReversal,
		Glyphs: core.Glyphs{
			Wall:  firstRune(c.Glyphs.Wall),
			Fruit: firstRune(c.Glyphs.Fruit),
			Snake: firstRune(c.Glyphs.Snake),
			Empty: firstRune(c.Glyphs.Empty),
		},
		Palette: core.Palette{
			Wall:  wall,
			Fruit: fruit,
			Snake: snake,
		},
	}, nil
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
