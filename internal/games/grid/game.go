// Package grid implements a block toggle sketch: click or press Space to
// flip blocks of a grid on and off.
package grid

import (
	"fmt"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// SaveKey is the fixed slot name for the sketch.
const SaveKey = "gridSketch"

const hudHeight = 2

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the grid toggle sketch.
type Game struct {
	cfg     config.GridConfig
	cells   [][]bool // [row][col]
	cursorX int
	cursorY int
	filled  int
	tick    uint64

	screenW int
	screenH int
	offX    int
	offY    int

	saveBtn  core.Button
	loadBtn  core.Button
	tooSmall bool
}

// New creates a new grid sketch.
func New() *Game {
	return &Game{cfg: config.DefaultGridConfig()}
}

func init() {
	registry.Register("grid", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "grid"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Grid Sketch"
}

// Reset clears the grid and lays it out for the screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadGrid(configPath)
	if err != nil {
		cfg = config.DefaultGridConfig()
	}
	g.cfg = cfg

	g.cells = make([][]bool, cfg.Rows)
	for r := range g.cells {
		g.cells[r] = make([]bool, cfg.Cols)
	}
	g.cursorX, g.cursorY = 0, 0
	g.filled = 0
	g.tick = 0
	g.layout(rc.ScreenW, rc.ScreenH)
}

// layout centers the grid below the HUD and places the footer buttons.
func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h

	gridW := g.cfg.Cols*g.cfg.BlockW + 1
	gridH := g.cfg.Rows*g.cfg.BlockH + 1
	g.tooSmall = w < gridW || h < gridH+hudHeight+1
	if g.tooSmall {
		return
	}

	g.offX = (w - gridW) / 2
	g.offY = hudHeight + (h-hudHeight-1-gridH)/2

	g.loadBtn = core.Button{Label: "[Load]", Y: h - 1}
	g.loadBtn.X = w - g.loadBtn.Width() - 1
	g.saveBtn = core.Button{Label: "[Save]", Y: h - 1}
	g.saveBtn.X = g.loadBtn.X - g.saveBtn.Width() - 1
}

// CellAt maps a screen cell to a grid block. ok is false outside the grid.
func (g *Game) CellAt(x, y int) (col, row int, ok bool) {
	if g.tooSmall || x < g.offX || y < g.offY {
		return 0, 0, false
	}
	col = (x - g.offX) / g.cfg.BlockW
	row = (y - g.offY) / g.cfg.BlockH
	if col >= g.cfg.Cols || row >= g.cfg.Rows {
		return 0, 0, false
	}
	return col, row, true
}

// Toggle flips one block.
func (g *Game) Toggle(col, row int) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = !g.cells[row][col]
	if g.cells[row][col] {
		g.filled++
	} else {
		g.filled--
	}
}

// Filled reports whether a block is on.
func (g *Game) Filled(col, row int) bool {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return false
	}
	return g.cells[row][col]
}

func (g *Game) clear() {
	for _, row := range g.cells {
		for c := range row {
			row[c] = false
		}
	}
	g.filled = 0
}

// Step applies one tick of input. The sketch never ends.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	var events []core.Event

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch {
	case input.Has(core.ActionSave):
		events = append(events, core.EventSaveRequested)
	case input.Has(core.ActionLoad):
		events = append(events, core.EventLoadRequested)
	}

	switch {
	case input.Has(core.ActionUp):
		g.cursorY = max(0, g.cursorY-1)
	case input.Has(core.ActionDown):
		g.cursorY = min(g.cfg.Rows-1, g.cursorY+1)
	case input.Has(core.ActionLeft):
		g.cursorX = max(0, g.cursorX-1)
	case input.Has(core.ActionRight):
		g.cursorX = min(g.cfg.Cols-1, g.cursorX+1)
	}

	if input.Has(core.ActionToggle) || input.Has(core.ActionJump) || input.Has(core.ActionConfirm) {
		g.Toggle(g.cursorX, g.cursorY)
		events = append(events, core.EventToggle)
	}
	if input.Has(core.ActionClear) || input.Has(core.ActionRestart) {
		g.clear()
	}

	if p := input.Pointer; p != nil && !p.Held {
		switch {
		case g.saveBtn.Pressed(p):
			events = append(events, core.EventSaveRequested)
		case g.loadBtn.Pressed(p):
			events = append(events, core.EventLoadRequested)
		default:
			if col, row, ok := g.CellAt(p.X, p.Y); ok {
				g.cursorX, g.cursorY = col, row
				g.Toggle(col, row)
				events = append(events, core.EventToggle)
			}
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state. The score is the filled count.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.filled}
}

// Render draws the grid, cursor and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.layout(dst.Width(), dst.Height())
	}

	hud := fmt.Sprintf(" Grid Sketch | Filled: %d/%d", g.filled, g.cfg.Cols*g.cfg.Rows)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	g.renderLines(dst)

	bw, bh := g.cfg.BlockW, g.cfg.BlockH
	for row := 0; row < g.cfg.Rows; row++ {
		for col := 0; col < g.cfg.Cols; col++ {
			inner := core.Rect{X: g.offX + col*bw + 1, Y: g.offY + row*bh + 1, W: bw - 1, H: bh - 1}
			cursor := col == g.cursorX && row == g.cursorY
			switch {
			case g.cells[row][col] && cursor:
				dst.DrawRectColor(inner, '▓', core.ColorBrightGreen)
			case g.cells[row][col]:
				dst.DrawRectColor(inner, '█', core.ColorGreen)
			case cursor:
				dst.DrawRectColor(inner, '░', core.ColorBrightYellow)
			}
		}
	}

	dst.DrawText(1, dst.Height()-1, "Click/Space: toggle  C: clear  F5/F9: save/load")
	g.saveBtn.Draw(dst, core.ColorBrightCyan)
	g.loadBtn.Draw(dst, core.ColorBrightCyan)
}

// renderLines draws the gray block outlines.
func (g *Game) renderLines(dst *core.Screen) {
	bw, bh := g.cfg.BlockW, g.cfg.BlockH
	w := g.cfg.Cols*bw + 1
	h := g.cfg.Rows*bh + 1
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			onV := dx%bw == 0
			onH := dy%bh == 0
			var r rune
			switch {
			case onV && onH:
				r = '┼'
			case onH:
				r = '─'
			case onV:
				r = '│'
			default:
				continue
			}
			dst.SetColor(g.offX+dx, g.offY+dy, r, core.ColorGray)
		}
	}
}
