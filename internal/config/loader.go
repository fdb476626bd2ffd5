package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads platformer configuration.
// Search order: customPath -> ~/.arcade/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	cfg, err := load("platformer.yaml", customPath, defaultPlatformerYAML, DefaultPlatformerConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadGrid loads grid sketch configuration.
// Search order: customPath -> ~/.arcade/configs/grid.yaml -> ./configs/grid.yaml -> embedded default
func LoadGrid(customPath string) (GridConfig, error) {
	cfg, err := load("grid.yaml", customPath, defaultGridYAML, DefaultGridConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load resolves a config file by the standard search order. Files found on
// the search path are layered over the hardcoded defaults so partial files
// work; a custom path that cannot be read or parsed is an error.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := defaults()
		if err := yaml.Unmarshal(data, &layered); err == nil {
			return layered, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.MaxJumps = 3
		cfg.Physics.Gravity *= 0.85
		cfg.Scoring.ParSeconds += cfg.Scoring.ParSeconds / 2
	case DifficultyNormal:
		cfg.Physics.MaxJumps = 2
	case DifficultyHard:
		cfg.Physics.MaxJumps = 1
		cfg.Physics.Gravity *= 1.15
		cfg.Scoring.ParSeconds -= cfg.Scoring.ParSeconds / 3
		cfg.Scoring.DoorPoints *= 2
	}
}
