package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// Recorder is a game that leaves a replay when it ends.
type Recorder interface {
	Replay() *cave.Replay
}

// helpHeight is the number of rows below the game reserved for key help.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a cave.
type Model struct {
	game       core.Game
	screen     *core.Screen
	store      *storage.Store
	log        *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	fixedSeed  bool
	loop       uint64
	quitting   bool
	back       bool
	saved      bool // score and replay stored for the current game over
	status     string
}

// Options configure a Model beyond the runtime config.
type Options struct {
	Keys  config.KeyStyle
	Store *storage.Store
	Log   *log.Logger
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts Options) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Log
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		game:       game,
		store:      opts.Store,
		log:        logger.With("cave", game.ID()),
		config:     cfg,
		keys:       NewKeyMap(opts.Keys),
		help:       h,
		inputFrame: core.NewInputFrame(),
		fixedSeed:  fixed,
		loop:       newLoopID(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1))
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop. The game is already reset by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.loop, tickInterval(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey accumulates actions until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.back = true
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only resizes the view; the cave keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.status = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.loop, tickInterval(m.config.TickRate))
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	next := result.Next
	if next <= 0 {
		next = tickInterval(m.config.TickRate)
	}
	return m, tickCmd(m.loop, next)
}

// saveResult stores the score and the replay of a finished game. Failures
// are logged; the game continues regardless.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		_, err := m.store.SaveScore(storage.ScoreEntry{
			CaveID: m.game.ID(),
			Level:  m.config.Level,
			Player: m.config.Player,
			Score:  m.gameState.Score,
		})
		if err != nil {
			m.log.Error("saving score", "err", err)
		}
	}
	rec, ok := m.game.(Recorder)
	if !ok {
		return
	}
	r := rec.Replay()
	if r == nil {
		return
	}
	if _, err := m.store.SaveReplay(m.game.ID(), *r); err != nil {
		m.log.Error("saving replay", "err", err)
		return
	}
	m.log.Debug("replay saved", "moves", len(r.Moves), "score", r.Score, "success", r.Success)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.txt", sanitizeFileName(m.game.ID()), timestamp)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("saving screenshot", "err", err)
		return
	}
	m.status = "saved " + path
}

// sanitizeFileName replaces the separators of cave IDs.
func sanitizeFileName(id string) string {
	out := []rune(id)
	for i, r := range out {
		if r == '/' || r == '\\' || r == ':' {
			out[i] = '_'
		}
	}
	return string(out)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Quitting reports whether the player left the game, by quit or back.
func (m Model) Quitting() bool {
	return m.quitting
}

// Back reports whether the player left with the back key rather than quit.
func (m Model) Back() bool {
	return m.back
}

// Run starts the Bubble Tea program for one game and reports whether the
// player asked to go back to the cave list.
func Run(game core.Game, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Back(), nil
	}
	return false, nil
}
