package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/grid.yaml
var defaultGridYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:      0.05,
			JumpImpulse:  -0.72,
			MaxFallSpeed: 0.9,
			MoveSpeed:    0.5,
			MaxJumps:     2,
		},
		Player: PlatformerPlayer{
			Width:      3,
			Height:     2,
			MinSize:    1,
			MaxSize:    6,
			ResizeStep: 1,
		},
		Input: PlatformerInput{
			HoldTicks: 12,
		},
		Sandbox: SandboxConfig{
			Width:     72,
			Height:    20,
			Platforms: 10,
			MinWidth:  4,
			MaxWidth:  14,
			MinGap:    3,
		},
		Scoring: ScoringConfig{
			DoorPoints:         100,
			ParSeconds:         30,
			TimeBonusPerSecond: 5,
		},
	}
}

// DefaultGridConfig returns the default grid sketch configuration.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Cols:   16,
		Rows:   9,
		BlockW: 4,
		BlockH: 2,
	}
}
