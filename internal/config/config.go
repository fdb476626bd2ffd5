// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/sketch-arcade/internal/physics"
)

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics PlatformerPhysics `yaml:"physics"`
	Player  PlatformerPlayer  `yaml:"player"`
	Input   PlatformerInput   `yaml:"input"`
	Sandbox SandboxConfig     `yaml:"sandbox"`
	Scoring ScoringConfig     `yaml:"scoring"`
}

// PlatformerPhysics defines per-tick physics constants, in cells.
type PlatformerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	MoveSpeed    float64 `yaml:"move_speed"`
	MaxJumps     int     `yaml:"max_jumps"`
}

// Params converts the YAML section to physics parameters.
func (p PlatformerPhysics) Params() physics.Params {
	return physics.Params{
		Gravity:      p.Gravity,
		JumpImpulse:  p.JumpImpulse,
		MaxFallSpeed: p.MaxFallSpeed,
		MoveSpeed:    p.MoveSpeed,
		MaxJumps:     p.MaxJumps,
	}
}

// PlatformerPlayer defines the player's starting size and resize limits.
type PlatformerPlayer struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	MinSize    int `yaml:"min_size"`
	MaxSize    int `yaml:"max_size"`
	ResizeStep int `yaml:"resize_step"`
}

// PlatformerInput tunes how discrete key presses become held movement.
type PlatformerInput struct {
	// HoldTicks is how long a left/right press keeps moving the player.
	// Terminals report key repeats but never key releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// SandboxConfig controls the randomly generated free-play world.
type SandboxConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Platforms int `yaml:"platforms"`
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinGap    int `yaml:"min_gap"` // Minimum vertical distance between platform rows
}

// ScoringConfig defines campaign scoring.
type ScoringConfig struct {
	DoorPoints         int `yaml:"door_points"`
	ParSeconds         int `yaml:"par_seconds"`
	TimeBonusPerSecond int `yaml:"time_bonus_per_second"`
}

// Validate reports configuration values the game cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Physics.JumpImpulse >= 0 || c.Physics.JumpImpulse <= -1:
		return fmt.Errorf("config: physics.jump_impulse must be in (-1, 0), got %v", c.Physics.JumpImpulse)
	case c.Physics.MaxFallSpeed <= 0 || c.Physics.MaxFallSpeed >= 1:
		return fmt.Errorf("config: physics.max_fall_speed must be in (0, 1), got %v", c.Physics.MaxFallSpeed)
	case c.Physics.MoveSpeed <= 0 || c.Physics.MoveSpeed > 1:
		return fmt.Errorf("config: physics.move_speed must be in (0, 1], got %v", c.Physics.MoveSpeed)
	case c.Physics.MaxJumps < 1:
		return fmt.Errorf("config: physics.max_jumps must be at least 1, got %d", c.Physics.MaxJumps)
	case c.Player.MinSize < 1 || c.Player.MaxSize < c.Player.MinSize:
		return fmt.Errorf("config: player size limits [%d, %d] are invalid", c.Player.MinSize, c.Player.MaxSize)
	case c.Player.Width < c.Player.MinSize || c.Player.Width > c.Player.MaxSize ||
		c.Player.Height < c.Player.MinSize || c.Player.Height > c.Player.MaxSize:
		return fmt.Errorf("config: player size %dx%d outside limits", c.Player.Width, c.Player.Height)
	case c.Sandbox.MinWidth < 1 || c.Sandbox.MaxWidth < c.Sandbox.MinWidth:
		return fmt.Errorf("config: sandbox platform widths [%d, %d] are invalid", c.Sandbox.MinWidth, c.Sandbox.MaxWidth)
	}
	return nil
}

// GridConfig contains configuration for the grid toggle sketch.
type GridConfig struct {
	Cols   int `yaml:"cols"`
	Rows   int `yaml:"rows"`
	BlockW int `yaml:"block_w"` // Block width in cells, including one grid line
	BlockH int `yaml:"block_h"` // Block height in cells, including one grid line
}

// Validate reports configuration values the sketch cannot run with.
func (c GridConfig) Validate() error {
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("config: grid must have at least one row and column, got %dx%d", c.Cols, c.Rows)
	}
	if c.BlockW < 2 || c.BlockH < 2 {
		return fmt.Errorf("config: grid blocks must be at least 2x2 cells, got %dx%d", c.BlockW, c.BlockH)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty maps a flag value to a preset. Empty or unknown values
// return "" which means the config is used as loaded.
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
