package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/games/platformer"
)

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return s
}

func TestMenuListsPrimaryGames(t *testing.T) {
	m := NewMenuModel(nil, "ana", testRuntime())
	var ids []string
	for _, item := range m.items {
		ids = append(ids, item.GameID)
	}
	if len(ids) != 2 || ids[0] != "grid" || ids[1] != "platformer" {
		t.Errorf("menu items = %v, want [grid platformer]", ids)
	}
}

func TestSessionPlatformerSandboxAndBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewSessionModel(nil, testRuntime(), "alice", nil)

	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = sessionSend(t, m, down)
	m = sessionSend(t, m, enter)
	if m.state != stateModeSelect {
		t.Fatalf("state = %v after picking the platformer, want mode select", m.state)
	}

	m = sessionSend(t, m, down)
	m = sessionSend(t, m, enter)
	if m.state != stateGame || m.game == nil {
		t.Fatalf("state = %v, want game", m.state)
	}
	if got := m.game.game.ID(); got != "platformer_sandbox" {
		t.Errorf("game = %q, want platformer_sandbox", got)
	}
	if m.game.opts.Owner != "alice" {
		t.Errorf("owner = %q, want the SSH user", m.game.opts.Owner)
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu || m.game != nil {
		t.Errorf("state = %v after esc, want menu", m.state)
	}
	if m.quitting {
		t.Error("esc in a game should not end the session")
	}
}

func TestSessionStartLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := NewSessionModel(nil, testRuntime(), "bob", nil)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	// Select Level... then the second level
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != stateGame {
		t.Fatalf("state = %v, want game", m.state)
	}
	g, ok := m.game.game.(*platformer.Game)
	if !ok {
		t.Fatalf("game is %T, want *platformer.Game", m.game.game)
	}
	if g.Level() == nil || g.Level().Name != platformer.LevelNames()[1] {
		t.Errorf("Level() = %+v, want the second level", g.Level())
	}
	if platformer.GetStartLevel() != 0 {
		t.Error("start level should be consumed by the game")
	}
}

func TestSessionScoreboardAndQuit(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "carol", nil)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != stateScoreboard {
		t.Fatalf("state = %v after tab, want scoreboard", m.state)
	}
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Fatalf("state = %v after esc, want menu", m.state)
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
