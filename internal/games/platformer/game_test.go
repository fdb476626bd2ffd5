package platformer

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24, TickRate: 60}
}

func newCampaign(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(testConfig())
	if g.loadErr != nil || g.tooSmall {
		t.Fatalf("campaign failed to start: err=%v tooSmall=%v", g.loadErr, g.tooSmall)
	}
	return g
}

func newSandbox(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := NewSandbox()
	g.Reset(testConfig())
	return g
}

func actions(as ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range as {
		in.Set(a)
	}
	return in
}

func pointer(x, y int, held bool) core.InputFrame {
	in := core.NewInputFrame()
	in.Point(x, y, held)
	return in
}

func idle(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestDeterminism(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g1 := NewSandbox()
	g1.Reset(testConfig())
	g2 := NewSandbox()
	g2.Reset(testConfig())

	rng := rand.New(rand.NewSource(7))
	moves := []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionGrow, core.ActionShrink, core.ActionDown}
	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if rng.Intn(4) == 0 {
			in.Set(moves[rng.Intn(len(moves))])
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestSandboxSeedChangesWorld(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	a := NewSandbox()
	a.Reset(testConfig())
	cfg := testConfig()
	cfg.Seed = 99
	b := NewSandbox()
	b.Reset(cfg)

	same := len(a.solids) == len(b.solids)
	for i := 0; same && i < len(a.solids); i++ {
		same = a.solids[i] == b.solids[i]
	}
	if same {
		t.Error("different seeds should generate different worlds")
	}

	a.Step(actions(core.ActionRestart))
	if len(a.solids) == 0 || a.Body() == nil {
		t.Fatal("regenerating should build a new world")
	}
	if a.door != nil {
		t.Error("sandbox should have no door")
	}
}

func TestSpawnStandsOnFloor(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)

	b := g.Body()
	if !b.Grounded {
		t.Fatal("player should be grounded after spawning")
	}
	if b.Bottom() != 17 {
		t.Errorf("feet at %v, want 17", b.Bottom())
	}
}

func TestHeldMovement(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)
	startX := g.Body().Pos.X

	g.Step(actions(core.ActionRight))
	idle(g, g.cfg.Input.HoldTicks-1)

	want := startX + float64(g.cfg.Input.HoldTicks)*g.cfg.Physics.MoveSpeed
	if got := g.Body().Pos.X; math.Abs(got-want) > 1e-9 {
		t.Fatalf("after hold X = %v, want %v", got, want)
	}

	idle(g, 5)
	if got := g.Body().Pos.X; math.Abs(got-want) > 1e-9 {
		t.Errorf("player kept moving after the hold expired: %v", got)
	}

	g.Step(actions(core.ActionLeft))
	g.Step(actions(core.ActionDown))
	idle(g, 3)
	if got := g.Body().Pos.X; math.Abs(got-(want-g.cfg.Physics.MoveSpeed)) > 1e-9 {
		t.Errorf("down should stop movement, X = %v", got)
	}
	if g.facing != -1 {
		t.Error("player should face left after moving left")
	}
}

func TestJumpBudget(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)

	res := g.Step(actions(core.ActionJump))
	if !res.Has(core.EventJump) {
		t.Fatal("first jump should fire")
	}
	if g.Body().Vel.Y >= 0 {
		t.Error("jump should move the player up")
	}

	if !g.Step(actions(core.ActionUp)).Has(core.EventJump) {
		t.Error("second jump should fire with the default budget")
	}
	if g.Step(actions(core.ActionJump)).Has(core.EventJump) {
		t.Error("third jump should be refused")
	}

	landed := false
	for i := 0; i < 200 && !landed; i++ {
		landed = g.Step(core.NewInputFrame()).Has(core.EventLand)
	}
	if !landed {
		t.Fatal("player never landed")
	}
	if g.Body().JumpsLeft != g.cfg.Physics.MaxJumps {
		t.Errorf("jump budget not refilled: %d", g.Body().JumpsLeft)
	}
}

func TestDoorAdvancesLevel(t *testing.T) {
	g := newCampaign(t)
	door := g.Level().Door
	g.Body().Pos = core.Vec2{X: door.X, Y: door.Y}

	res := g.Step(core.NewInputFrame())
	if !res.Has(core.EventDoor) || !res.Has(core.EventLevelCleared) {
		t.Fatalf("touching the door should clear the level, events %v", res.Events)
	}
	wantScore := g.cfg.Scoring.DoorPoints + g.cfg.Scoring.ParSeconds*g.cfg.Scoring.TimeBonusPerSecond
	if res.State.Score != wantScore {
		t.Errorf("score = %d, want %d", res.State.Score, wantScore)
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("state = %s", g.Snapshot().State)
	}

	idle(g, levelClearTicks)
	snap := g.Snapshot()
	if snap.Level != 2 || snap.State != StatePlaying {
		t.Errorf("after delay level=%d state=%s, want level 2 playing", snap.Level, snap.State)
	}
	spawn := g.Level().Spawn
	if g.Body().Pos.X != spawn.X {
		t.Errorf("player not at the new spawn: %v", g.Body().Pos)
	}
}

func TestTimeBonusExpires(t *testing.T) {
	g := newCampaign(t)
	idle(g, (g.cfg.Scoring.ParSeconds+5)*60)

	door := g.Level().Door
	g.Body().Pos = core.Vec2{X: door.X, Y: door.Y}
	res := g.Step(core.NewInputFrame())
	if res.State.Score != g.cfg.Scoring.DoorPoints {
		t.Errorf("score past par = %d, want %d", res.State.Score, g.cfg.Scoring.DoorPoints)
	}
}

func TestWinAfterLastLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	levels, _ := BuiltinLevels()

	SetStartLevel(len(levels))
	g := New()
	g.Reset(testConfig())
	if GetStartLevel() != 0 {
		t.Error("start level should reset after use")
	}
	if g.Snapshot().Level != len(levels) {
		t.Fatalf("started on level %d", g.Snapshot().Level)
	}

	door := g.Level().Door
	g.Body().Pos = core.Vec2{X: door.X, Y: door.Y}
	res := g.Step(core.NewInputFrame())
	if !res.Has(core.EventWin) || !res.State.GameOver {
		t.Fatalf("last door should win, got %+v", res)
	}

	idle(g, 10)
	if !g.State().GameOver {
		t.Error("win should persist until restart")
	}

	g.Step(actions(core.ActionRestart))
	if g.State().GameOver || g.State().Score != 0 || g.Snapshot().Level != 1 {
		t.Errorf("restart after win should start over, got %+v", g.Snapshot())
	}
}

func TestRestartRespawnsInLevel(t *testing.T) {
	g := newCampaign(t)
	g.Step(actions(core.ActionRight))
	idle(g, 5)

	g.Step(actions(core.ActionRestart))
	if g.Body().Pos.X != g.Level().Spawn.X || g.levelTicks != 0 {
		t.Errorf("restart should respawn, pos %v ticks %d", g.Body().Pos, g.levelTicks)
	}
}

func TestResize(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)
	b := g.Body()
	feet := b.Bottom()
	center := b.Pos.X + b.W/2

	if !g.Step(actions(core.ActionGrow)).Has(core.EventResize) {
		t.Fatal("grow should succeed in open space")
	}
	if b.W != 4 || b.H != 3 {
		t.Errorf("size = %vx%v, want 4x3", b.W, b.H)
	}
	if math.Abs(b.Bottom()-feet) > 0.2 || math.Abs(b.Pos.X+b.W/2-center) > 1e-9 {
		t.Errorf("resize moved the player: pos %v", b.Pos)
	}

	for i := 0; i < 10; i++ {
		g.Step(actions(core.ActionShrink))
	}
	if b.W != float64(g.cfg.Player.MinSize) || b.H != float64(g.cfg.Player.MinSize) {
		t.Errorf("shrink should stop at the minimum, got %vx%v", b.W, b.H)
	}
	if g.Step(actions(core.ActionShrink)).Has(core.EventResize) {
		t.Error("shrinking at the minimum should not report a resize")
	}
}

func TestResizeBlockedUnderPlatform(t *testing.T) {
	g := newCampaign(t)
	// First platform of level one spans x 14-23 on row 14; standing under
	// it leaves no head room.
	g.Body().Pos = core.Vec2{X: 16, Y: 15}
	idle(g, 2)
	before := g.Body().Rect()

	if g.Step(actions(core.ActionGrow)).Has(core.EventResize) {
		t.Fatal("grow under a platform should be refused")
	}
	if after := g.Body().Rect(); after.W != before.W || after.H != before.H {
		t.Errorf("refused resize changed size: %v -> %v", before, after)
	}
}

func TestTouchZones(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)
	y := 10

	x0 := g.Body().Pos.X
	g.Step(pointer(70, y, false))
	if g.Body().Pos.X <= x0 {
		t.Error("press in the right third should move right")
	}

	g.Step(pointer(5, y, true))
	g.Step(pointer(5, y, true))
	if g.intent != -1 {
		t.Error("drag in the left third should hold left")
	}

	if g.Step(pointer(40, y, true)).Has(core.EventJump) {
		t.Error("dragging through the middle should not jump")
	}
	if !g.Step(pointer(40, y, false)).Has(core.EventJump) {
		t.Error("press in the middle should jump")
	}
}

func TestSaveLoadRequests(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)
	x0 := g.Body().Pos.X

	res := g.Step(pointer(g.saveBtn.X+1, g.saveBtn.Y, false))
	if !res.Has(core.EventSaveRequested) {
		t.Error("save button should request a save")
	}
	if res.Has(core.EventJump) || g.hold != 0 || g.Body().Pos.X != x0 {
		t.Error("button press should not move the player")
	}

	if !g.Step(pointer(g.loadBtn.X, g.loadBtn.Y, false)).Has(core.EventLoadRequested) {
		t.Error("load button should request a load")
	}
	if !g.Step(actions(core.ActionSave)).Has(core.EventSaveRequested) {
		t.Error("save key should request a save")
	}
	if !g.Step(actions(core.ActionLoad)).Has(core.EventLoadRequested) {
		t.Error("load key should request a load")
	}

	s := newSandbox(t)
	if s.Step(actions(core.ActionSave)).Has(core.EventSaveRequested) {
		t.Error("sandbox should not request saves")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetStartLevel(2)
	g := New()
	g.Reset(testConfig())
	g.Body().Pos = core.Vec2{X: 10, Y: 5}

	data, err := g.MarshalSave()
	if err != nil {
		t.Fatalf("MarshalSave() failed: %v", err)
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("save is not JSON: %v", err)
	}
	if raw["x"] != 10 || raw["y"] != 5 || raw["level"] != 1 {
		t.Errorf("save = %s", data)
	}

	other := New()
	other.Reset(testConfig())
	if err := other.UnmarshalSave(data); err != nil {
		t.Fatalf("UnmarshalSave() failed: %v", err)
	}
	if other.Snapshot().Level != 2 {
		t.Errorf("restored level = %d, want 2", other.Snapshot().Level)
	}
	if other.Body().Pos != (core.Vec2{X: 10, Y: 5}) {
		t.Errorf("restored position = %v", other.Body().Pos)
	}
}

func TestLoadStartsRunOver(t *testing.T) {
	g := newCampaign(t)
	data, err := g.MarshalSave()
	if err != nil {
		t.Fatalf("MarshalSave() failed: %v", err)
	}
	onePass := g.cfg.Scoring.DoorPoints + g.cfg.Scoring.ParSeconds*g.cfg.Scoring.TimeBonusPerSecond

	for i := range 3 {
		if err := g.UnmarshalSave(data); err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
		if g.State().Score != 0 || g.doors != 0 {
			t.Fatalf("load %d kept score=%d doors=%d", i, g.State().Score, g.doors)
		}

		door := g.Level().Door
		g.Body().Pos = core.Vec2{X: door.X, Y: door.Y}
		g.Step(core.NewInputFrame())
		idle(g, levelClearTicks)

		snap := g.Snapshot()
		if snap.Level != 2 || g.State().Score != onePass || g.doors != 1 {
			t.Errorf("pass %d: level=%d score=%d doors=%d, want level 2 score %d doors 1",
				i, snap.Level, g.State().Score, g.doors, onePass)
		}
	}
}

func TestStartLevelBelongsToGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	SetStartLevel(2)
	a := New()
	b := New()
	if GetStartLevel() != 0 {
		t.Error("New should take over the start level")
	}

	a.Reset(testConfig())
	b.Reset(testConfig())
	if a.Snapshot().Level != 2 || b.Snapshot().Level != 1 {
		t.Errorf("levels a=%d b=%d, want 2 and 1", a.Snapshot().Level, b.Snapshot().Level)
	}

	// A later selection must not leak into an existing game's restart.
	SetStartLevel(3)
	a.Reset(testConfig())
	if a.Snapshot().Level != 1 {
		t.Errorf("restart level = %d, want 1", a.Snapshot().Level)
	}
	SetStartLevel(0)
}

func TestLoadClampsPosition(t *testing.T) {
	g := newCampaign(t)
	if err := g.UnmarshalSave([]byte(`{"x":500,"y":-20,"level":0}`)); err != nil {
		t.Fatalf("UnmarshalSave() failed: %v", err)
	}
	b := g.Body()
	if b.Pos.X != float64(g.worldW)-b.W || b.Pos.Y != 0 {
		t.Errorf("position not clamped into the world: %v", b.Pos)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	g := newCampaign(t)
	g.Step(actions(core.ActionRight))
	before := g.Snapshot()

	bad := []string{
		`not json`,
		`{"x":1,"y":1,"level":99}`,
		`{"x":1,"y":1,"level":-1}`,
		`{"x":0,"y":16,"level":0}`, // Inside the floor
	}
	for _, data := range bad {
		if err := g.UnmarshalSave([]byte(data)); err == nil {
			t.Errorf("UnmarshalSave(%s) should fail", data)
		}
	}
	if after := g.Snapshot(); after != before {
		t.Errorf("failed loads changed state:\n%+v\n%+v", before, after)
	}
}

func TestSandboxHasNoSaveSlot(t *testing.T) {
	g := newSandbox(t)
	if _, err := g.MarshalSave(); !errors.Is(err, ErrSandboxSave) {
		t.Errorf("MarshalSave() = %v, want ErrSandboxSave", err)
	}
	if err := g.UnmarshalSave([]byte(`{}`)); !errors.Is(err, ErrSandboxSave) {
		t.Errorf("UnmarshalSave() = %v, want ErrSandboxSave", err)
	}
}

func TestStaysInBounds(t *testing.T) {
	g := newSandbox(t)
	rng := rand.New(rand.NewSource(3))
	moves := []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionGrow, core.ActionShrink}

	for i := 0; i < 3000; i++ {
		in := core.NewInputFrame()
		if rng.Intn(3) == 0 {
			in.Set(moves[rng.Intn(len(moves))])
		}
		g.Step(in)

		r := g.Body().Rect()
		bounds := g.Bounds()
		if r.X < bounds.X || r.Y < bounds.Y || r.Right() > bounds.Right()+1e-9 || r.Bottom() > bounds.Bottom()+1e-9 {
			t.Fatalf("tick %d: body %v escaped %v", i, r, bounds)
		}
	}
}

func TestRenderPlayerAndWorld(t *testing.T) {
	g := newCampaign(t)
	idle(g, 2)

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	head := scr.GetCell(g.offX+int(g.Body().Pos.X)+1, g.offY+int(g.Body().Pos.Y))
	if head.Rune != 'o' || head.Color != core.ColorBrightYellow {
		t.Errorf("player head cell = %+v", head)
	}
	floor := scr.GetCell(g.offX, g.offY+g.worldH-1)
	if floor.Rune != '█' || floor.Color != core.ColorBrown {
		t.Errorf("floor cell = %+v", floor)
	}
	if !strings.Contains(scr.Row(0), "Level 1/") {
		t.Errorf("HUD = %q", scr.Row(0))
	}
	if !strings.Contains(scr.Row(23), "[Save]") || !strings.Contains(scr.Row(23), "[Load]") {
		t.Errorf("footer = %q", scr.Row(23))
	}
}

func TestTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s", g.Snapshot().State)
	}
	x := g.Body().Pos.X
	g.Step(actions(core.ActionRight))
	if g.Body().Pos.X != x {
		t.Error("small window should pause the game")
	}

	scr := core.NewScreen(40, 12)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("small window should show a message")
	}

	big := core.NewScreen(80, 24)
	g.Render(big)
	if g.tooSmall {
		t.Error("growing the screen should resume the game")
	}
}

func TestLevelErrorReported(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  - map: \"....\\n####\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetLevelsPath(path)
	defer SetLevelsPath("")

	g := New()
	g.Reset(testConfig())
	if g.Snapshot().State != StateError {
		t.Fatalf("state = %s, want error", g.Snapshot().State)
	}
	g.Step(actions(core.ActionRight))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Level data error") {
		t.Error("level error should be shown")
	}
}

func TestDifficultyPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := New()
	g.Reset(testConfig())
	if g.params.MaxJumps != 1 {
		t.Errorf("hard preset MaxJumps = %d, want 1", g.params.MaxJumps)
	}
}

func TestRegistered(t *testing.T) {
	for _, info := range registry.List() {
		if info.ID == "platformer_sandbox" && !info.Variant {
			t.Error("sandbox should be a variant")
		}
	}
	g, err := registry.Create("platformer")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, ok := registry.AsPersistent(g); !ok {
		t.Error("platformer should be persistent")
	}
}
