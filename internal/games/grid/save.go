package grid

import (
	"encoding/json"
	"fmt"
)

// sketch is the saved form of the grid: one string per row, '#' for a
// filled block and '.' for an empty one.
type sketch struct {
	Cols  int      `json:"cols"`
	Rows  int      `json:"rows"`
	Cells []string `json:"cells"`
}

// SaveKey returns the fixed storage slot.
func (g *Game) SaveKey() string {
	return SaveKey
}

// MarshalSave encodes the current pattern.
func (g *Game) MarshalSave() ([]byte, error) {
	s := sketch{Cols: g.cfg.Cols, Rows: g.cfg.Rows, Cells: make([]string, len(g.cells))}
	for r, row := range g.cells {
		line := make([]byte, len(row))
		for c, on := range row {
			if on {
				line[c] = '#'
			} else {
				line[c] = '.'
			}
		}
		s.Cells[r] = string(line)
	}
	return json.Marshal(s)
}

// UnmarshalSave restores a pattern. The grid is left untouched if the data
// is malformed or was saved with different dimensions.
func (g *Game) UnmarshalSave(data []byte) error {
	var s sketch
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("grid: invalid save: %w", err)
	}
	if s.Cols != g.cfg.Cols || s.Rows != g.cfg.Rows || len(s.Cells) != s.Rows {
		return fmt.Errorf("grid: saved sketch is %dx%d, current grid is %dx%d", s.Cols, s.Rows, g.cfg.Cols, g.cfg.Rows)
	}

	cells := make([][]bool, s.Rows)
	filled := 0
	for r, line := range s.Cells {
		if len(line) != s.Cols {
			return fmt.Errorf("grid: row %d has %d blocks, want %d", r, len(line), s.Cols)
		}
		cells[r] = make([]bool, s.Cols)
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '#':
				cells[r][c] = true
				filled++
			case '.':
			default:
				return fmt.Errorf("grid: row %d has invalid block %q", r, line[c])
			}
		}
	}

	g.cells = cells
	g.filled = filled
	return nil
}
