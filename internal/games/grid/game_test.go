package grid

import (
	"strings"
	"testing"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.tooSmall {
		t.Fatal("default grid should fit in 80x24")
	}
	return g
}

func press(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.Point(x, y, false)
	return in
}

func TestStartsEmpty(t *testing.T) {
	g := newTestGame(t)
	for row := 0; row < g.cfg.Rows; row++ {
		for col := 0; col < g.cfg.Cols; col++ {
			if g.Filled(col, row) {
				t.Fatalf("block (%d,%d) filled at start", col, row)
			}
		}
	}
	if g.State().Score != 0 || g.State().GameOver {
		t.Errorf("unexpected initial state %+v", g.State())
	}
}

func TestCellAt(t *testing.T) {
	g := newTestGame(t)
	bw, bh := g.cfg.BlockW, g.cfg.BlockH

	tests := []struct {
		name     string
		x, y     int
		col, row int
		ok       bool
	}{
		{"first block interior", g.offX + 1, g.offY + 1, 0, 0, true},
		{"second column", g.offX + bw + 1, g.offY + 1, 1, 0, true},
		{"third row", g.offX + 1, g.offY + 2*bh + 1, 0, 2, true},
		{"last block", g.offX + g.cfg.Cols*bw - 1, g.offY + g.cfg.Rows*bh - 1, g.cfg.Cols - 1, g.cfg.Rows - 1, true},
		{"left of grid", g.offX - 1, g.offY + 1, 0, 0, false},
		{"above grid", g.offX + 1, g.offY - 1, 0, 0, false},
		{"right edge line", g.offX + g.cfg.Cols*bw, g.offY + 1, 0, 0, false},
		{"far away", 500, 500, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := g.CellAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("CellAt(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if ok && (col != tt.col || row != tt.row) {
				t.Errorf("CellAt(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestPointerToggles(t *testing.T) {
	g := newTestGame(t)
	x, y := g.offX+g.cfg.BlockW+1, g.offY+1

	res := g.Step(press(x, y))
	if !g.Filled(1, 0) {
		t.Fatal("press should fill the block")
	}
	if !res.Has(core.EventToggle) || res.State.Score != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	g.Step(press(x, y))
	if g.Filled(1, 0) || g.State().Score != 0 {
		t.Error("second press should empty the block")
	}
}

func TestPointerOutsideIgnored(t *testing.T) {
	g := newTestGame(t)
	res := g.Step(press(0, 0))
	if res.Has(core.EventToggle) || g.State().Score != 0 {
		t.Error("press outside the grid should be ignored")
	}

	drag := core.NewInputFrame()
	drag.Point(g.offX+1, g.offY+1, true)
	g.Step(drag)
	if g.Filled(0, 0) {
		t.Error("drags should not toggle")
	}
}

func TestKeyboardCursor(t *testing.T) {
	g := newTestGame(t)

	step := func(a core.Action) {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}

	step(core.ActionLeft) // Already at the edge
	step(core.ActionRight)
	step(core.ActionRight)
	step(core.ActionDown)
	step(core.ActionToggle)

	if !g.Filled(2, 1) {
		t.Error("toggle should fill the block under the cursor")
	}

	step(core.ActionClear)
	if g.Filled(2, 1) || g.State().Score != 0 {
		t.Error("clear should empty every block")
	}
}

func TestSaveButtons(t *testing.T) {
	g := newTestGame(t)

	res := g.Step(press(g.saveBtn.X, g.saveBtn.Y))
	if !res.Has(core.EventSaveRequested) {
		t.Error("save button should request a save")
	}
	res = g.Step(press(g.loadBtn.X+2, g.loadBtn.Y))
	if !res.Has(core.EventLoadRequested) {
		t.Error("load button should request a load")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionSave)
	if !g.Step(in).Has(core.EventSaveRequested) {
		t.Error("save action should request a save")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	g := newTestGame(t)
	g.Toggle(0, 0)
	g.Toggle(3, 2)

	data, err := g.MarshalSave()
	if err != nil {
		t.Fatalf("MarshalSave() failed: %v", err)
	}

	other := newTestGame(t)
	if err := other.UnmarshalSave(data); err != nil {
		t.Fatalf("UnmarshalSave() failed: %v", err)
	}
	if !other.Filled(0, 0) || !other.Filled(3, 2) || other.State().Score != 2 {
		t.Error("restored sketch does not match")
	}
}

func TestUnmarshalSaveRejectsBadData(t *testing.T) {
	g := newTestGame(t)
	g.Toggle(1, 1)

	bad := [][]byte{
		[]byte(`not json`),
		[]byte(`{"cols":2,"rows":1,"cells":["#."]}`),
		[]byte(`{"cols":16,"rows":9,"cells":["#"]}`),
	}
	for _, data := range bad {
		if err := g.UnmarshalSave(data); err == nil {
			t.Errorf("UnmarshalSave(%s) should fail", data)
		}
	}
	if !g.Filled(1, 1) || g.State().Score != 1 {
		t.Error("failed load should leave the sketch unchanged")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	g.Toggle(0, 0)

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	if !strings.Contains(scr.Row(0), "Filled: 1/") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}
	cell := scr.GetCell(g.offX+1, g.offY+1)
	if cell.Color != core.ColorBrightGreen {
		t.Errorf("filled cursor block color = %v", cell.Color)
	}
	if scr.GetCell(g.offX, g.offY).Rune != '┼' {
		t.Error("grid lines missing")
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	t.Setenv("HOME", t.TempDir())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10})

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("small window should show a message")
	}
	if g.Step(press(5, 5)).Has(core.EventToggle) {
		t.Error("small window should ignore input")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("grid") {
		t.Fatal("grid should be registered")
	}
	g, _ := registry.Create("grid")
	if _, ok := registry.AsPersistent(g); !ok {
		t.Error("grid should be persistent")
	}
}
