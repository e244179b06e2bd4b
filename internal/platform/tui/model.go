package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/term-snake/internal/core"
	"github.com/vovakirdan/term-snake/internal/platform/loop"
)

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       loop.Game
	screen     *core.Screen
	config     loop.Config
	keys       KeyMap
	pending    []core.Action // Direction keys not yet consumed, one per tick
	inputFrame core.InputFrame
	gameState  core.GameState
	status     loop.ExitStatus
	ticks      uint64
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game loop.Game, cfg loop.Config) Model {
	cfg = cfg.WithDefaults()
	return Model{
		game:       game,
		screen:     core.NewScreen(game.Bounds()),
		config:     cfg,
		keys:       DefaultKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.config.Logger.Info("session started", "game", m.game.Title(), "tick", m.config.Tick, "ui", "tea")
	return tea.Batch(tea.SetWindowTitle(m.game.Title()), tickCmd(m.config.Tick))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		m.status = loop.ExitInterrupted
		m.config.Logger.Info("session interrupted", "ticks", m.ticks, "score", m.gameState.Score)
		return m, tea.Quit
	default:
		m.pending = append(m.pending, action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.gameState.GameOver {
		return m, nil
	}

	m.inputFrame.Clear()
	if len(m.pending) > 0 {
		m.inputFrame.Set(m.pending[0])
		m.pending = m.pending[1:]
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.ticks++
	if result.Ate {
		m.config.Logger.Debug("fruit eaten", "tick", m.ticks, "score", result.State.Score)
	}

	if m.gameState.GameOver {
		m.status = loop.ExitGameOver
		m.config.Logger.Info("game over",
			"ticks", m.ticks,
			"score", result.State.Score,
			"collision", result.Collision,
		)
		return m, tea.Quit
	}

	return m, tickCmd(m.config.Tick)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return core.Frame(m.config.Style(m.screen), m.game.Footer())
}

// Status returns how the session ended.
func (m Model) Status() loop.ExitStatus {
	return m.status
}

// Run starts the Bubble Tea program and blocks until the game ends, the
// player quits, or ctx is cancelled.
func Run(ctx context.Context, game loop.Game, cfg loop.Config) (loop.ExitStatus, error) {
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if loop.IsInterrupt(ctx.Err()) {
			return loop.ExitInterrupted, nil
		}
		return loop.ExitError, fmt.Errorf("tui: run program: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return loop.ExitError, fmt.Errorf("tui: unexpected model %T", finalModel)
	}
	return m.Status(), nil
}
