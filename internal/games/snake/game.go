// Package snake implements the classic single-player snake on a walled grid.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/term-snake/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a grid cell.
type Point = core.Point

// Game holds the full state of one snake session.
type Game struct {
	rng   *rand.Rand
	tick  uint64
	score int

	// Grid
	width    int
	height   int
	interior core.Rect // Cells inside the wall ring

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	food      Point

	gameOver      bool
	collision     core.Collision
	blockReversal bool

	glyphs  core.Glyphs
	palette core.Palette
}

// New creates a new Snake game. Call Reset before stepping it.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes the game: snake at the grid center heading right,
// fruit somewhere in the interior.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.collision = core.CollisionNone
	g.blockReversal = cfg.BlockReversal
	g.glyphs = cfg.Glyphs
	g.palette = cfg.Palette

	g.width = cfg.GridW
	g.height = cfg.GridH
	field := core.NewRect(0, 0, g.width, g.height)
	g.interior = field.Inset(1)

	g.snake = []Point{field.Center()}
	g.direction = DirRight
	g.spawnFood()
}

// Bounds returns the grid size, wall ring included.
func (g *Game) Bounds() (width, height int) {
	return g.width, g.height
}

// spawnFood places food uniformly over the interior.
// The snake body is not excluded, so fruit may land on it.
func (g *Game) spawnFood() {
	if g.interior.W <= 0 || g.interior.H <= 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = Point{
		X: g.interior.X + g.rng.Intn(g.interior.W),
		Y: g.interior.Y + g.rng.Intn(g.interior.H),
	}
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick: apply input, move, resolve
// collisions and fruit.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State(), Collision: g.collision}
	}
	g.tick++

	g.processInput(input)
	ate := g.moveSnake()

	return core.StepResult{
		State:     g.State(),
		Ate:       ate,
		Collision: g.collision,
	}
}

// processInput handles direction changes. The new direction takes effect
// on this tick's move.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.direction

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	if g.blockReversal && len(g.snake) > 1 && isOpposite(newDir, g.direction) {
		return
	}
	g.direction = newDir
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the current direction and reports
// whether fruit was eaten.
func (g *Game) moveSnake() bool {
	if len(g.snake) == 0 {
		return false
	}

	dx, dy := g.direction.Delta()
	newHead := g.snake[0].Add(dx, dy)
	g.snake = append([]Point{newHead}, g.snake...)

	// Wall first, then body. The tail has not moved yet, so stepping into
	// the cell it occupies is a collision.
	if !g.interior.Contains(newHead) {
		g.endGame(core.CollisionWall)
	}
	for _, seg := range g.snake[1:] {
		if seg == newHead {
			g.endGame(core.CollisionSelf)
			break
		}
	}

	if newHead == g.food {
		g.score++
		g.spawnFood()
		return true
	}
	g.snake = g.snake[:len(g.snake)-1]
	return false
}

// endGame marks the game over, keeping the first collision cause.
func (g *Game) endGame(c core.Collision) {
	if !g.gameOver {
		g.collision = c
	}
	g.gameOver = true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}

// Delta returns the cell offset of one move in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d\n", g.tick, g.score))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s\n", len(g.snake), g.direction))
	if len(g.snake) > 0 {
		b.WriteString(fmt.Sprintf("Head: (%d, %d), Food: (%d, %d)\n", g.snake[0].X, g.snake[0].Y, g.food.X, g.food.Y))
	}
	b.WriteString(fmt.Sprintf("GameOver: %v, Collision: %s\n", g.gameOver, g.collision))
	return b.String()
}
