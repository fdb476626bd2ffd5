package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

const maxScores = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// boardKeys are the scoreboard bindings.
type boardKeys struct {
	Scroll     key.Binding
	SwitchGame key.Binding
	DeleteSave key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.SwitchGame, k.DeleteSave, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll:     key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		SwitchGame: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch game")),
		DeleteSave: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete save")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the score history of each game together with the
// owner's save slot for it.
type ScoreboardModel struct {
	store     *storage.Store
	owner     string
	games     []registry.GameInfo
	current   int
	stats     *storage.GameStats
	saves     map[string]storage.SaveSlot // game ID -> owner's slot
	table     table.Model
	help      help.Model
	keys      boardKeys
	notice    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for the primary games. Saves are
// looked up for owner.
func NewScoreboardModel(store *storage.Store, owner string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		owner:  owner,
		games:  registry.Primary(),
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.loadSaves()
	m.selectGame(0)
	return m
}

func newScoreTable(width, height int) table.Model {
	dateWidth := min(max(width-36, 12), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectGame switches to the game at index i, wrapping around.
func (m *ScoreboardModel) selectGame(i int) {
	m.stats = nil
	if len(m.games) == 0 {
		m.table.SetRows(nil)
		return
	}
	m.current = (i%len(m.games) + len(m.games)) % len(m.games)
	id := m.games[m.current].ID

	var rows []table.Row
	if m.store != nil {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			for rank, s := range scores {
				rows = append(rows, table.Row{
					fmt.Sprintf("#%d", rank+1),
					fmt.Sprintf("%d", s.Score),
					s.CreatedAt.Local().Format("Jan 02 15:04"),
				})
			}
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) loadSaves() {
	m.saves = make(map[string]storage.SaveSlot)
	if m.store == nil {
		return
	}
	slots, err := m.store.ListSaves(m.owner)
	if err != nil {
		return
	}
	for _, slot := range slots {
		m.saves[slot.GameID] = slot
	}
}

// deleteSave removes the owner's slot for the selected game.
func (m *ScoreboardModel) deleteSave() {
	if len(m.games) == 0 || m.store == nil {
		return
	}
	slot, ok := m.saves[m.games[m.current].ID]
	if !ok {
		m.notice = "Nothing to delete"
		return
	}
	if _, err := m.store.DeleteSave(m.owner, slot.Slot); err != nil {
		m.notice = "Delete failed"
		return
	}
	delete(m.saves, slot.GameID)
	m.notice = "Save deleted"
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchGame):
			step := 1
			switch msg.String() {
			case "shift+tab", "left", "h":
				step = -1
			}
			m.selectGame(m.current + step)
			return m, nil
		case key.Matches(msg, m.keys.DeleteSave):
			m.deleteSave()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.selectGame(m.current)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(boardDimStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(centerText(m.saveLine(), m.width)))
	b.WriteString("\n\n")

	body := boardDimStyle.Italic(true).Padding(1, 4).Render("No scores recorded yet.")
	if len(m.table.Rows()) > 0 {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(boardTitleStyle.Render(centerText(m.notice, m.width)))
	}
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return "No games played"
	}
	return fmt.Sprintf("Best %d  |  Games %d  |  Average %.0f",
		m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore)
}

// saveLine shows the save slot status of the selected game.
func (m ScoreboardModel) saveLine() string {
	if len(m.games) == 0 {
		return ""
	}
	slot, ok := m.saves[m.games[m.current].ID]
	if !ok {
		return "No saved progress"
	}
	return "Saved " + slot.UpdatedAt.Local().Format("Jan 02 15:04")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, owner string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, owner, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
