// Package platformer implements a side-view platformer with gravity, double
// jumps, resizable player and a campaign of door-to-door levels, plus a
// randomly generated sandbox.
package platformer

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/physics"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeSandbox  Mode = "sandbox"
)

// SaveKey is the fixed slot name for campaign progress.
const SaveKey = "platformerSave"

const (
	hudHeight       = 2
	footerHeight    = 1
	levelClearTicks = 90 // ~1.5 seconds at 60 FPS
	runFrameTicks   = 6
)

// Package-level settings applied on the next Reset (set via CLI and menus).
var (
	configPath         string
	levelsPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets a custom levels YAML file. Empty means built-in levels.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficulty(preset)
}

// SetStartLevel sets the starting level (1-based). 0 means start from the
// beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Game implements the platformer.
type Game struct {
	mode   Mode
	cfg    config.PlatformerConfig
	params physics.Params
	rng    *rand.Rand
	tick   uint64

	levels     []*Level
	levelIndex int
	startLevel int // 1-based level for the next Reset, 0 for the first
	levelTicks int // Ticks spent in the current level
	tickRate   int
	score      int
	doors      int
	lastBonus  int

	// World
	worldW int
	worldH int
	bounds core.RectF
	solids []core.RectF
	door   *core.RectF // nil in the sandbox

	// Player
	body    *physics.Body
	intent  float64 // Horizontal intent, -1, 0 or 1
	hold    int     // Ticks the intent stays active
	facing  int     // 1 right, -1 left
	runTick int

	// Screen layout
	screenW int
	screenH int
	offX    int
	offY    int
	border  bool
	saveBtn core.Button
	loadBtn core.Button

	// Game state flags
	levelCleared bool
	clearTicks   int
	won          bool
	paused       bool
	tooSmall     bool
	loadErr      error
}

// New creates a new campaign platformer. It takes over the level chosen with
// SetStartLevel, so the choice applies to this game only.
func New() *Game {
	g := &Game{mode: ModeCampaign, startLevel: selectedStartLevel}
	selectedStartLevel = 0
	return g
}

// NewSandbox creates a new free-play platformer on a generated world.
func NewSandbox() *Game {
	return &Game{mode: ModeSandbox}
}

func init() {
	registry.Register("platformer", func() registry.Game {
		return New()
	})
	registry.RegisterVariant("platformer_sandbox", func() registry.Game {
		return NewSandbox()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSandbox {
		return "platformer_sandbox"
	}
	return "platformer"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSandbox {
		return "Platformer (Sandbox)"
	}
	return "Platformer"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.params = cfg.Physics.Params()

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.score = 0
	g.doors = 0
	g.lastBonus = 0
	g.levelCleared = false
	g.clearTicks = 0
	g.won = false
	g.paused = false
	g.loadErr = nil
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	if g.mode == ModeSandbox {
		g.generateSandbox()
		return
	}

	g.levels, g.loadErr = LoadLevels(levelsPath)
	if g.loadErr != nil {
		g.levels = nil
		return
	}

	g.levelIndex = 0
	if g.startLevel > 0 && g.startLevel <= len(g.levels) {
		g.levelIndex = g.startLevel - 1
	}
	g.startLevel = 0 // Restarts begin at the first level
	g.loadLevel()
}

// Level returns the current campaign level, or nil in the sandbox.
func (g *Game) Level() *Level {
	if g.mode == ModeSandbox || g.levelIndex < 0 || g.levelIndex >= len(g.levels) {
		return nil
	}
	return g.levels[g.levelIndex]
}

// LevelCount returns the number of campaign levels loaded.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// loadLevel builds the world for the current level and spawns the player.
func (g *Game) loadLevel() {
	level := g.Level()
	if level == nil {
		return
	}

	g.setWorld(level.Width, level.Height, level.Solids)
	door := level.Door
	g.door = &door
	g.levelTicks = 0
	g.levelCleared = false
	g.clearTicks = 0
	g.spawn(level.Spawn)
}

// setWorld installs world geometry and lays it out on screen.
func (g *Game) setWorld(w, h int, solids []core.RectF) {
	g.worldW, g.worldH = w, h
	g.bounds = core.NewRectF(0, 0, float64(w), float64(h))
	g.solids = solids
	g.layout(g.screenW, g.screenH)
}

// spawn places a fresh body standing on the bottom edge of the spawn cell,
// nudged upward out of any solid it would start inside.
func (g *Game) spawn(at core.Vec2) {
	w := float64(g.cfg.Player.Width)
	h := float64(g.cfg.Player.Height)
	y := at.Y + 1 - h
	g.body = physics.NewBody(at.X, y, w, h, g.params)
	r := g.body.Rect().ClampInside(g.bounds)
	for i := 0; i < g.cfg.Player.MaxSize && physics.Overlapping(r, g.solids); i++ {
		r.Y--
	}
	g.body.Pos = core.Vec2{X: r.X, Y: r.Y}

	g.intent = 0
	g.hold = 0
	g.facing = 1
	g.runTick = 0
}

// layout positions the world and footer buttons for the screen size.
func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h

	g.tooSmall = w < g.worldW || h < g.worldH+hudHeight+footerHeight
	if g.tooSmall {
		return
	}

	g.border = w >= g.worldW+2 && h >= g.worldH+2+hudHeight+footerHeight
	extra := 0
	if g.border {
		extra = 1
	}
	g.offX = (w - g.worldW) / 2
	g.offY = hudHeight + extra + (h-hudHeight-footerHeight-g.worldH-2*extra)/2

	g.loadBtn = core.Button{Label: "[Load]", Y: h - 1}
	g.loadBtn.X = w - g.loadBtn.Width() - 1
	g.saveBtn = core.Button{Label: "[Save]", Y: h - 1}
	g.saveBtn.X = g.loadBtn.X - g.saveBtn.Width() - 1
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	var events []core.Event

	if g.loadErr != nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionRestart) {
		switch {
		case g.mode == ModeSandbox:
			g.generateSandbox()
			return core.StepResult{State: g.State()}
		case g.won:
			g.Reset(core.RuntimeConfig{
				Seed:     g.rng.Int63(),
				ScreenW:  g.screenW,
				ScreenH:  g.screenH,
				TickRate: g.tickRate,
			})
			return core.StepResult{State: g.State()}
		case !g.levelCleared:
			g.loadLevel()
			return core.StepResult{State: g.State()}
		}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.won || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= levelClearTicks {
			g.levelIndex++
			g.loadLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.levelTicks++

	if g.mode == ModeCampaign {
		switch {
		case input.Has(core.ActionSave) || g.saveBtn.Pressed(input.Pointer):
			events = append(events, core.EventSaveRequested)
		case input.Has(core.ActionLoad) || g.loadBtn.Pressed(input.Pointer):
			events = append(events, core.EventLoadRequested)
		}
	}

	if g.processInput(input) {
		events = append(events, core.EventJump)
	}

	if input.Has(core.ActionGrow) || input.Has(core.ActionShrink) {
		step := g.cfg.Player.ResizeStep
		if input.Has(core.ActionShrink) {
			step = -step
		}
		if g.resize(step) {
			events = append(events, core.EventResize)
		}
	}

	dir := 0.0
	if g.hold > 0 {
		dir = g.intent
		g.hold--
	}
	info := g.body.Step(g.params, dir, g.solids, g.bounds)
	if info.Landed {
		events = append(events, core.EventLand)
	}

	if dir != 0 {
		g.facing = int(dir)
		g.runTick++
	} else {
		g.runTick = 0
	}

	if g.door != nil && g.body.Rect().Intersects(*g.door) {
		events = append(events, g.enterDoor()...)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// processInput turns keys and pointer contacts into movement. It reports
// whether a jump happened.
func (g *Game) processInput(input core.InputFrame) bool {
	jump := input.Has(core.ActionJump) || input.Has(core.ActionUp)

	switch {
	case input.Has(core.ActionLeft):
		g.setIntent(-1)
	case input.Has(core.ActionRight):
		g.setIntent(1)
	case input.Has(core.ActionDown):
		g.intent = 0
		g.hold = 0
	}

	if p := input.Pointer; p != nil && !g.onButton(p) {
		switch g.touchZone(p.X) {
		case -1:
			g.setIntent(-1)
		case 1:
			g.setIntent(1)
		default:
			if !p.Held {
				jump = true
			}
		}
	}

	return jump && g.body.Jump(g.params)
}

func (g *Game) setIntent(dir float64) {
	g.intent = dir
	g.hold = max(1, g.cfg.Input.HoldTicks)
}

func (g *Game) onButton(p *core.Pointer) bool {
	if g.mode != ModeCampaign {
		return false
	}
	return g.saveBtn.Rect().Contains(p.X, p.Y) || g.loadBtn.Rect().Contains(p.X, p.Y)
}

// touchZone splits the screen in thirds: -1 left, 0 middle, 1 right.
func (g *Game) touchZone(x int) int {
	third := max(1, g.screenW/3)
	switch {
	case x < third:
		return -1
	case x >= g.screenW-third:
		return 1
	default:
		return 0
	}
}

// resize grows or shrinks the player by step cells on both axes within the
// configured limits.
func (g *Game) resize(step int) bool {
	lo, hi := g.cfg.Player.MinSize, g.cfg.Player.MaxSize
	w := core.Clamp(int(g.body.W)+step, lo, hi)
	h := core.Clamp(int(g.body.H)+step, lo, hi)
	if float64(w) == g.body.W && float64(h) == g.body.H {
		return false
	}
	return g.body.Resize(float64(w), float64(h), g.solids, g.bounds)
}

// enterDoor scores the level and either queues the next one or wins.
func (g *Game) enterDoor() []core.Event {
	elapsed := g.levelTicks / g.tickRate
	g.lastBonus = max(0, g.cfg.Scoring.ParSeconds-elapsed) * g.cfg.Scoring.TimeBonusPerSecond
	g.score += g.cfg.Scoring.DoorPoints + g.lastBonus
	g.doors++

	if g.levelIndex+1 >= len(g.levels) {
		g.won = true
		return []core.Event{core.EventDoor, core.EventWin}
	}
	g.levelCleared = true
	g.clearTicks = 0
	return []core.Event{core.EventDoor, core.EventLevelCleared}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.won,
		Paused:   g.paused,
	}
}

// Body returns the player body.
func (g *Game) Body() *physics.Body {
	return g.body
}

// Bounds returns the world box.
func (g *Game) Bounds() core.RectF {
	return g.bounds
}

// pose chooses the player's animation frame.
func (g *Game) pose() Pose {
	switch {
	case !g.body.Grounded && g.body.Vel.Y < 0:
		return PoseJump
	case !g.body.Grounded:
		return PoseFall
	case g.runTick > 0 && (g.runTick/runFrameTicks)%2 == 0:
		return PoseRun1
	case g.runTick > 0:
		return PoseRun2
	default:
		return PoseIdle
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderHUD(dst)
		dst.DrawOverlay("Level data error", g.loadErr.Error())
		return
	}

	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.layout(dst.Width(), dst.Height())
	}

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	g.renderWorld(dst)
	g.renderFooter(dst)

	switch {
	case g.won:
		dst.DrawOverlay("You Win!", fmt.Sprintf("Final Score: %d  Press R to play again", g.score))
	case g.levelCleared:
		dst.DrawOverlay(fmt.Sprintf("Level %d cleared!", g.levelIndex+1), fmt.Sprintf("+%d points", g.cfg.Scoring.DoorPoints+g.lastBonus))
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	switch {
	case g.mode == ModeSandbox:
		hud = fmt.Sprintf(" Platformer (Sandbox) | Size: %dx%d  Jumps: %d", int(g.body.W), int(g.body.H), g.body.JumpsLeft)
	case g.Level() != nil:
		hud = fmt.Sprintf(" Platformer | Level %d/%d: %s  Score: %d  Time: %ds  Jumps: %d",
			g.levelIndex+1, len(g.levels), g.Level().Name, g.score, g.levelTicks/g.tickRate, g.body.JumpsLeft)
	default:
		hud = " Platformer"
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderWorld draws the frame, solids, door and player.
func (g *Game) renderWorld(dst *core.Screen) {
	if g.border {
		dst.DrawBoxColor(core.Rect{X: g.offX - 1, Y: g.offY - 1, W: g.worldW + 2, H: g.worldH + 2}, core.ColorGray)
	}

	for _, s := range g.solids {
		r := s.Cells()
		r.X += g.offX
		r.Y += g.offY
		dst.DrawRectColor(r, '█', core.ColorBrown)
	}

	if g.door != nil {
		r := g.door.Cells()
		r.X += g.offX
		r.Y += g.offY
		doorSprite.Draw(dst, r, false)
	}

	r := g.body.Rect().Cells()
	r.X += g.offX
	r.Y += g.offY
	playerSprites[g.pose()].Draw(dst, r, g.facing < 0)
}

// renderFooter draws controls and, in the campaign, the save/load buttons.
func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.mode == ModeSandbox {
		dst.DrawText(1, y, "←/→ move  ↑/Space jump  +/- resize  R: regenerate")
		return
	}
	dst.DrawText(1, y, "←/→ move  ↑/Space jump  +/- resize  F5/F9 save/load")
	g.saveBtn.Draw(dst, core.ColorBrightCyan)
	g.loadBtn.Draw(dst, core.ColorBrightCyan)
}
