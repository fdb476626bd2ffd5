package platformer

import (
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/physics"
)

// generateSandbox builds a random world: a floor plus platforms on rows
// spaced MinGap apart, so every row is reachable with a single jump.
func (g *Game) generateSandbox() {
	sc := g.cfg.Sandbox
	w, h := sc.Width, sc.Height
	gap := max(2, sc.MinGap)

	solids := []core.RectF{core.NewRectF(0, float64(h-1), float64(w), 1)}

	spawnAt := core.Vec2{X: 1, Y: float64(h - 2)}
	spawnBox := core.NewRectF(0, float64(h-1-g.cfg.Player.MaxSize), float64(2+g.cfg.Player.MaxSize), float64(g.cfg.Player.MaxSize))

	var rows []int
	for y := h - 1 - gap; y >= 2; y -= gap {
		rows = append(rows, y)
	}

	for i := 0; i < sc.Platforms && len(rows) > 0; i++ {
		y := rows[i%len(rows)]
		pw := sc.MinWidth
		if sc.MaxWidth > sc.MinWidth {
			pw += g.rng.Intn(sc.MaxWidth - sc.MinWidth + 1)
		}
		pw = min(pw, w)
		x := 0
		if w > pw {
			x = g.rng.Intn(w - pw + 1)
		}

		p := core.NewRectF(float64(x), float64(y), float64(pw), 1)
		// Platforms on the same row must not merge into one and must leave
		// the spawn area clear.
		grown := core.NewRectF(p.X-1, p.Y, p.W+2, p.H)
		if grown.Intersects(spawnBox) || physics.Overlapping(grown, solids) {
			continue
		}
		solids = append(solids, p)
	}

	g.door = nil
	g.levelTicks = 0
	g.setWorld(w, h, solids)
	g.spawn(spawnAt)
}
