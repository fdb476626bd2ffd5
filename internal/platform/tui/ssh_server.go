// Package tui turns registry games into Bubble Tea programs, for a local
// terminal or for every session of a Wish SSH server.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig configures the arcade SSH server.
type SSHServerConfig struct {
	// Address to listen on, host:port.
	Address string

	// HostKeyPath defaults to ~/.arcade/host_key and is generated when
	// missing.
	HostKeyPath string

	// DBPath is the path to the scores and saves database.
	DBPath string

	// IdleTimeout disconnects sessions without input. Zero disables it.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings used by "arcade serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/arcade.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServer serves one arcade session per SSH connection. All sessions share
// the score table; save slots are keyed by SSH user.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer opens storage and prepares the Wish server. A database that
// cannot be opened disables persistence instead of failing.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "arcade-ssh"})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: cfg.Logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("scores and saves disabled", "db", cfg.DBPath, "error", err)
		srv.store = nil
	}

	// Middlewares run last to first: logging wraps the PTY check, which
	// wraps the program.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			requirePTY,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("tui: create SSH server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the host key location and makes sure its directory
// exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: locate home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: create host key directory: %w", err)
	}
	return path, nil
}

// requirePTY turns away sessions without a terminal, such as "ssh host cmd".
func requirePTY(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if _, _, ok := sess.Pty(); !ok {
			wish.Fatalln(sess, "The arcade needs a terminal. Connect with: ssh -t")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.store, cfg, sess.User(), s.logger), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started", "active", s.active.Add(1))
		next(sess)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second), "active", s.active.Add(-1))
	}
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int64 {
	return s.active.Load()
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("listening", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if s.store != nil {
			s.store.Close()
		}
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.active.Load())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits for sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionState is the screen a session is showing.
type sessionState int

const (
	stateMenu sessionState = iota
	stateModeSelect
	stateScoreboard
	stateGame
)

// startMu serializes game creation across sessions. Start levels are
// package-level settings consumed by the next Reset.
var startMu sync.Mutex

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger
	state    sessionState
	menu     MenuModel
	modes    PlatformerModeModel
	scores   ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a new session model. Saves are kept under username.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logger.With("user", username),
		menu:     NewMenuModel(store, username, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateModeSelect:
		return m.updateModes(msg)
	case stateScoreboard:
		return m.updateScores(msg)
	case stateGame:
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode. Sub-models quit their own
// program when done, so their commands are dropped on every transition.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.username, m.config.ScreenW, m.config.ScreenH)
		m.state = stateScoreboard
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		if selected.GameID == "platformer" {
			m.modes = NewPlatformerModeModel(m.config.ScreenW, m.config.ScreenH)
			m.state = stateModeSelect
			return m, nil
		}
		return m.startGame(selected.GameID, nil)
	}

	return m, cmd
}

// updateModes handles the platformer mode selector.
func (m SessionModel) updateModes(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModes, cmd := m.modes.Update(msg)
	if modes, ok := newModes.(PlatformerModeModel); ok {
		m.modes = modes
	}

	switch {
	case m.modes.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.modes.WantsBack():
		return m.toMenu()
	}

	if sel := m.modes.Selected(); sel != nil {
		return m.startGame(sel.GameID(), sel)
	}
	return m, cmd
}

// updateScores handles the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// startGame creates the game and switches to it.
func (m SessionModel) startGame(gameID string, sel *PlatformerSelection) (tea.Model, tea.Cmd) {
	startMu.Lock()
	defer startMu.Unlock()

	if sel != nil {
		sel.Apply()
	}
	game, err := registry.Create(gameID)
	if err != nil {
		// Shouldn't happen since menus only offer registered games
		m.logger.Error("could not create game", "game", gameID, "error", err)
		return m.toMenu()
	}

	m.config.Seed = time.Now().UnixNano()
	gameModel := NewGameModel(game, m.store, m.config, Options{
		Owner:  m.username,
		Logger: m.logger,
	})
	m.game = &gameModel
	m.state = stateGame
	m.logger.Info("game selected", "game", gameID)

	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// toMenu resets the menu and shows it.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.game = nil
	m.menu = NewMenuModel(m.store, m.username, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateModeSelect:
		return m.modes.View()
	case stateScoreboard:
		return m.scores.View()
	case stateGame:
		return m.game.View()
	}
	return m.menu.View()
}
