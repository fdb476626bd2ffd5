package platformer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/physics"
)

// ErrSandboxSave is returned when saving or loading outside the campaign.
var ErrSandboxSave = errors.New("platformer: the sandbox has no save slot")

// progress is the saved campaign state: player position and level index.
type progress struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Level int     `json:"level"`
}

// SaveKey returns the fixed storage slot.
func (g *Game) SaveKey() string {
	return SaveKey
}

// MarshalSave encodes the player position and current level.
func (g *Game) MarshalSave() ([]byte, error) {
	if g.mode != ModeCampaign {
		return nil, ErrSandboxSave
	}
	if g.body == nil {
		return nil, errors.New("platformer: nothing to save")
	}
	return json.Marshal(progress{X: g.body.Pos.X, Y: g.body.Pos.Y, Level: g.levelIndex})
}

// UnmarshalSave jumps to the saved level and places the player at the saved
// position, clamped into the world. The run starts over from there: score and
// cleared doors go back to zero. Invalid data leaves the game unchanged.
func (g *Game) UnmarshalSave(data []byte) error {
	if g.mode != ModeCampaign {
		return ErrSandboxSave
	}

	var p progress
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("platformer: invalid save: %w", err)
	}
	if p.Level < 0 || p.Level >= len(g.levels) {
		return fmt.Errorf("platformer: saved level %d out of range [0, %d)", p.Level, len(g.levels))
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return errors.New("platformer: saved position is not finite")
	}

	level := g.levels[p.Level]
	w := float64(g.cfg.Player.Width)
	h := float64(g.cfg.Player.Height)
	r := core.NewRectF(p.X, p.Y, w, h).ClampInside(level.Bounds())
	if physics.Overlapping(r, level.Solids) {
		return fmt.Errorf("platformer: saved position (%.1f, %.1f) is inside a wall", p.X, p.Y)
	}

	g.levelIndex = p.Level
	g.won = false
	g.score = 0
	g.doors = 0
	g.lastBonus = 0
	g.loadLevel()
	g.body.Pos = core.Vec2{X: r.X, Y: r.Y}
	return nil
}
