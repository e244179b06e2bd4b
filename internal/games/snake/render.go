package snake

import "github.com/vovakirdan/term-snake/internal/core"

// Trailer is the instruction line printed under the grid.
const Trailer = "Use arrow keys to move. Ctrl+C to quit."

// Render draws the grid into dst, which should be at least Bounds() in size.
// Wall wins over fruit, fruit wins over snake.
func (g *Game) Render(dst *core.Screen) {
	body := make(map[Point]bool, len(g.snake))
	for _, seg := range g.snake {
		body[seg] = true
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			switch {
			case !g.interior.Contains(p):
				dst.SetCell(x, y, core.Cell{Rune: g.glyphs.Wall, Color: g.palette.Wall})
			case p == g.food:
				dst.SetCell(x, y, core.Cell{Rune: g.glyphs.Fruit, Color: g.palette.Fruit})
			case body[p]:
				dst.SetCell(x, y, core.Cell{Rune: g.glyphs.Snake, Color: g.palette.Snake})
			default:
				dst.Set(x, y, g.glyphs.Empty)
			}
		}
	}
}

// Footer returns the line shown below the grid.
func (g *Game) Footer() string {
	return Trailer
}

// Frame renders the game as plain text: one newline-terminated line per
// grid row followed by the trailer line.
func (g *Game) Frame() string {
	screen := core.NewScreen(g.width, g.height)
	g.Render(screen)
	return core.Frame(screen.String(), g.Footer())
}
