package platformer

import "github.com/vovakirdan/sketch-arcade/internal/core"

// Sprite is a small piece of rune art drawn facing right. Colors maps runes
// to palette entries; runes without an entry use Base.
type Sprite struct {
	Rows   []string
	Base   core.Color
	Colors map[rune]core.Color
}

// Pose selects a player animation frame.
type Pose int

const (
	PoseIdle Pose = iota
	PoseRun1
	PoseRun2
	PoseJump
	PoseFall
)

var playerColors = map[rune]core.Color{
	'o': core.ColorBrightYellow,
}

var playerSprites = map[Pose]Sprite{
	PoseIdle: {Rows: []string{" o ", "/|\\", "/ \\"}, Base: core.ColorBrightCyan, Colors: playerColors},
	PoseRun1: {Rows: []string{" o ", "-|\\", "/ >"}, Base: core.ColorBrightCyan, Colors: playerColors},
	PoseRun2: {Rows: []string{" o ", "/|-", " |\\"}, Base: core.ColorBrightCyan, Colors: playerColors},
	PoseJump: {Rows: []string{"\\o/", " | ", "/ \\"}, Base: core.ColorBrightCyan, Colors: playerColors},
	PoseFall: {Rows: []string{" o ", "/|\\", "| |"}, Base: core.ColorBrightCyan, Colors: playerColors},
}

var doorSprite = Sprite{
	Rows:   []string{"┌─┐", "│•│", "│ │"},
	Base:   core.ColorYellow,
	Colors: map[rune]core.Color{'•': core.ColorBrightYellow},
}

// mirrored maps directional runes to their horizontal reflection.
var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'┌': '┐', '┐': '┌',
	'└': '┘', '┘': '└',
}

// Size returns the sprite's width and height in runes.
func (s Sprite) Size() (int, int) {
	w := 0
	for _, row := range s.Rows {
		w = max(w, len([]rune(row)))
	}
	return w, len(s.Rows)
}

// At samples the sprite for a target cell (tx, ty) of a w×h box using
// nearest-neighbour scaling. Spaces are transparent and report ok=false.
func (s Sprite) At(tx, ty, w, h int, flip bool) (r rune, c core.Color, ok bool) {
	sw, sh := s.Size()
	if sw == 0 || sh == 0 || w <= 0 || h <= 0 {
		return 0, 0, false
	}

	// Sample at the center of the target cell.
	sx := (2*tx + 1) * sw / (2 * w)
	sy := (2*ty + 1) * sh / (2 * h)
	if flip {
		sx = sw - 1 - sx
	}

	row := []rune(s.Rows[sy])
	if sx < 0 || sx >= len(row) || row[sx] == ' ' {
		return 0, 0, false
	}
	r = row[sx]
	if flip {
		if m, ok := mirrored[r]; ok {
			r = m
		}
	}

	c = s.Base
	if col, ok := s.Colors[row[sx]]; ok {
		c = col
	}
	return r, c, true
}

// Draw renders the sprite scaled to box, mirrored when flip is set.
func (s Sprite) Draw(dst *core.Screen, box core.Rect, flip bool) {
	for ty := 0; ty < box.H; ty++ {
		for tx := 0; tx < box.W; tx++ {
			if r, c, ok := s.At(tx, ty, box.W, box.H, flip); ok {
				dst.SetColor(box.X+tx, box.Y+ty, r, c)
			}
		}
	}
}
