package platformer

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

//go:embed levels.yaml
var builtinLevelsYAML []byte

// Limits keep every level drawable in an 80x24 terminal with the HUD and
// footer.
const (
	MaxLevelWidth  = 78
	MaxLevelHeight = 21
)

// Level is a parsed campaign stage. Coordinates are world cells with the
// origin at the top-left of the map.
type Level struct {
	ID     string
	Name   string
	Width  int
	Height int
	Solids []core.RectF
	Door   core.RectF
	Spawn  core.Vec2 // Cell holding 'P'; the player stands on its bottom edge
}

// Bounds returns the world box of the level.
func (l *Level) Bounds() core.RectF {
	return core.NewRectF(0, 0, float64(l.Width), float64(l.Height))
}

type levelFile struct {
	Levels []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Map  string `yaml:"map"`
	} `yaml:"levels"`
}

// ParseLevel builds a Level from an ASCII map.
// Characters:
//
//	'#' = solid; horizontal runs merge into one rectangle
//	'D' = door; the door is the bounding box of all 'D' cells
//	'P' = player spawn, exactly one
//	anything else = empty
func ParseLevel(id, name string, lines []string) (*Level, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("level %s: empty map", id)
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	if width > MaxLevelWidth || len(lines) > MaxLevelHeight {
		return nil, fmt.Errorf("level %s: map is %dx%d, limit is %dx%d", id, width, len(lines), MaxLevelWidth, MaxLevelHeight)
	}

	level := &Level{ID: id, Name: name, Width: width, Height: len(lines)}

	spawns := 0
	doorMin := core.Vec2{X: float64(width), Y: float64(len(lines))}
	doorMax := core.Vec2{X: -1, Y: -1}

	for y, line := range lines {
		runStart := -1
		for x := 0; x <= width; x++ {
			var ch byte = '.'
			if x < len(line) {
				ch = line[x]
			}

			if ch == '#' && x < width {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			if runStart >= 0 {
				level.Solids = append(level.Solids, core.NewRectF(float64(runStart), float64(y), float64(x-runStart), 1))
				runStart = -1
			}

			switch ch {
			case 'D':
				doorMin.X = min(doorMin.X, float64(x))
				doorMin.Y = min(doorMin.Y, float64(y))
				doorMax.X = max(doorMax.X, float64(x))
				doorMax.Y = max(doorMax.Y, float64(y))
			case 'P':
				spawns++
				level.Spawn = core.Vec2{X: float64(x), Y: float64(y)}
			}
		}
	}

	switch {
	case spawns == 0:
		return nil, fmt.Errorf("level %s: no spawn point 'P'", id)
	case spawns > 1:
		return nil, fmt.Errorf("level %s: %d spawn points, want one", id, spawns)
	case doorMax.X < 0:
		return nil, fmt.Errorf("level %s: no door 'D'", id)
	}
	level.Door = core.NewRectF(doorMin.X, doorMin.Y, doorMax.X-doorMin.X+1, doorMax.Y-doorMin.Y+1)

	return level, nil
}

// ParseLevels decodes a YAML levels document.
func ParseLevels(data []byte) ([]*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, errors.New("levels: no levels defined")
	}

	levels := make([]*Level, 0, len(f.Levels))
	seen := make(map[string]bool)
	for i, l := range f.Levels {
		id := l.ID
		if id == "" {
			id = fmt.Sprintf("level-%d", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("levels: duplicate id %q", id)
		}
		seen[id] = true

		name := l.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}

		level, err := ParseLevel(id, name, strings.Split(l.Map, "\n"))
		if err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// LoadLevels reads levels from path, or the built-in set if path is empty.
func LoadLevels(path string) ([]*Level, error) {
	if path == "" {
		return BuiltinLevels()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", path, err)
	}
	return ParseLevels(data)
}

// BuiltinLevels returns the embedded campaign.
func BuiltinLevels() ([]*Level, error) {
	return ParseLevels(builtinLevelsYAML)
}

// LevelNames lists the names of the campaign levels, for menus. A custom
// levels file set with SetLevelsPath is used when present.
func LevelNames() []string {
	levels, err := LoadLevels(levelsPath)
	if err != nil {
		return nil
	}
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	return names
}
