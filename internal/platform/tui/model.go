package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/sound"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

// toastSeconds is how long save/load feedback stays on screen.
const toastSeconds = 2

// Options carries the per-session services a GameModel uses.
type Options struct {
	// Owner keys save slots: the local user or the SSH user.
	Owner string

	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// Sound plays effects for game events. Nil is silent.
	Sound sound.Player

	// ScreenshotDir overrides ~/.arcade/screenshots.
	ScreenshotDir string
}

// GameModel is the Bubble Tea model for running one game, locally or inside
// an SSH session.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	loop       uint64
	toast      string
	toastTicks int
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
// The store may be nil, in which case scores and saves are unavailable.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Owner == "" {
		opts.Owner = LocalOwner()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger.With("game", game.ID(), "owner", opts.Owner),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       newLoopID(),
	}
}

// LocalOwner returns the save owner for a local session.
func LocalOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "local"
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "seed", m.config.Seed)

	// Start the tick loop
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

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

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. Games lay themselves out on
// every render, so progress survives the resize.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	sound.PlayEvents(m.opts.Sound, result.Events)
	for _, e := range result.Events {
		switch e {
		case core.EventSaveRequested:
			m.save()
		case core.EventLoadRequested:
			m.load()
		case core.EventLevelCleared, core.EventWin:
			m.logger.Info("progress", "event", e.String(), "score", m.gameState.Score)
		}
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	if m.toastTicks > 0 {
		m.toastTicks--
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m *GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "score", m.gameState.Score)
}

// save writes the game state to its fixed slot.
func (m *GameModel) save() {
	p, ok := registry.AsPersistent(m.game)
	if !ok {
		m.showToast("This game has no save slot")
		return
	}
	if m.store == nil {
		m.showToast("Storage unavailable")
		return
	}

	data, err := p.MarshalSave()
	if err != nil {
		m.logger.Warn("could not encode save", "error", err)
		m.showToast("Nothing to save here")
		return
	}
	if err := m.store.PutSave(m.opts.Owner, p.SaveKey(), m.game.ID(), data); err != nil {
		m.logger.Error("could not write save", "slot", p.SaveKey(), "error", err)
		m.showToast("Save failed")
		return
	}

	m.logger.Info("saved", "slot", p.SaveKey(), "bytes", len(data))
	m.showToast("Saved")
}

// load restores the game state from its fixed slot. A missing slot leaves
// the game as it is.
func (m *GameModel) load() {
	p, ok := registry.AsPersistent(m.game)
	if !ok {
		m.showToast("This game has no save slot")
		return
	}
	if m.store == nil {
		m.showToast("Storage unavailable")
		return
	}

	slot, err := m.store.GetSave(m.opts.Owner, p.SaveKey())
	if errors.Is(err, storage.ErrNoSave) {
		m.showToast("No save found")
		return
	}
	if err != nil {
		m.logger.Error("could not read save", "slot", p.SaveKey(), "error", err)
		m.showToast("Load failed")
		return
	}

	if err := p.UnmarshalSave(slot.Data); err != nil {
		m.logger.Warn("rejected save data", "slot", p.SaveKey(), "error", err)
		m.showToast("Save data is damaged")
		return
	}

	m.gameState = m.game.State()
	m.logger.Info("loaded", "slot", p.SaveKey(), "saved_at", slot.UpdatedAt)
	m.showToast("Loaded")
}

func (m *GameModel) showToast(text string) {
	m.toast = text
	m.toastTicks = toastSeconds * m.config.TickRate
}

// Toast returns the feedback line currently shown, or "" if none.
func (m GameModel) Toast() string {
	if m.toastTicks <= 0 {
		return ""
	}
	return m.toast
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not write screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.showToast("Screenshot saved")
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if toast := m.Toast(); toast != "" && m.screen.Height() > 0 {
		text := " " + toast + " "
		x := (m.screen.Width() - len(text)) / 2
		m.screen.DrawTextColor(max(x, 0), m.screen.Height()-1, text, core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// State returns the game state after the latest tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single local game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Taps and drags become pointer contacts
	)

	_, err := p.Run()
	return err
}
