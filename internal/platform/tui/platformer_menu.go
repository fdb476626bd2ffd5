package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/games/platformer"
)

// PlatformerSelection holds the user's choice from the platformer menu.
type PlatformerSelection struct {
	Mode  platformer.Mode
	Level int // 0 = start from beginning, otherwise a 1-based level
}

// GameID returns the registry ID that runs this selection.
func (s PlatformerSelection) GameID() string {
	if s.Mode == platformer.ModeSandbox {
		return "platformer_sandbox"
	}
	return "platformer"
}

// Apply pushes the start level to the platformer before it is created.
func (s PlatformerSelection) Apply() {
	if s.Mode == platformer.ModeCampaign && s.Level > 0 {
		platformer.SetStartLevel(s.Level)
	}
}

// PlatformerModeModel lets users choose campaign, sandbox or a starting level.
type PlatformerModeModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levelNames    []string
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     PlatformerSelection
	choosing      bool
	quitting      bool
	back          bool
}

var platformerModes = []string{
	"Campaign",
	"Sandbox (random world)",
	"Select Level...",
}

// NewPlatformerModeModel creates a new platformer mode selection model.
func NewPlatformerModeModel(width, height int) PlatformerModeModel {
	return PlatformerModeModel{
		levelNames: platformer.LevelNames(),
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		choosing:   true,
	}
}

// Init initializes the model.
func (m PlatformerModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlatformerModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m PlatformerModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m PlatformerModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(platformerModes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(PlatformerSelection{Mode: platformer.ModeCampaign})
		case 1:
			return m.choose(PlatformerSelection{Mode: platformer.ModeSandbox})
		case 2:
			if len(m.levelNames) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m PlatformerModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levelNames)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(PlatformerSelection{
			Mode:  platformer.ModeCampaign,
			Level: m.levelCursor + 1, // 1-indexed
		})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m PlatformerModeModel) choose(s PlatformerSelection) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = s
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m PlatformerModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m PlatformerModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("P L A T F O R M E R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range platformerModes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		if i == 0 {
			mode = fmt.Sprintf("%s (%d levels)", mode, len(m.levelNames))
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m PlatformerModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, name := range m.levelNames {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m PlatformerModeModel) Selected() *PlatformerSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PlatformerModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PlatformerModeModel) WantsBack() bool {
	return m.back
}

// RunPlatformerModeSelector runs the platformer mode selection. It returns a
// nil selection if the user backed out or quit.
func RunPlatformerModeSelector(cfg core.RuntimeConfig) (*PlatformerSelection, core.RuntimeConfig, error) {
	model := NewPlatformerModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(PlatformerModeModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
