// Package physics integrates platformer bodies against static rectangles.
//
// Integration is explicit Euler at one step per tick: gravity accumulates into
// vertical velocity, velocity accumulates into position, and collisions are
// resolved per axis by snapping the body to the face it hit and zeroing the
// velocity on that axis. World units are screen cells.
package physics

import (
	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Params are the per-tick constants for a body.
type Params struct {
	Gravity      float64 // Added to Vel.Y each tick
	JumpImpulse  float64 // Vel.Y set on jump (negative = up)
	MaxFallSpeed float64 // Cap on downward Vel.Y; keep below 1 to avoid tunnelling through 1-cell floors
	MoveSpeed    float64 // Horizontal cells per tick at full intent
	MaxJumps     int     // Jump budget refilled on landing
}

// Body is a moving axis-aligned box.
type Body struct {
	Pos       core.Vec2 // Top-left corner
	Vel       core.Vec2
	W, H      float64
	Grounded  bool
	JumpsLeft int
}

// floorEpsilon absorbs rounding when comparing the feet against the world floor.
const floorEpsilon = 1e-9

// StepInfo describes the contacts made during one Step.
type StepInfo struct {
	Landed     bool // Became grounded this tick
	HitCeiling bool
	HitWall    bool
}

// NewBody creates an airborne body with a full jump budget.
func NewBody(x, y, w, h float64, p Params) *Body {
	return &Body{
		Pos:       core.Vec2{X: x, Y: y},
		W:         w,
		H:         h,
		JumpsLeft: p.MaxJumps,
	}
}

// Rect returns the body's bounding box.
func (b *Body) Rect() core.RectF {
	return core.NewRectF(b.Pos.X, b.Pos.Y, b.W, b.H)
}

// Bottom returns the y-coordinate of the body's feet.
func (b *Body) Bottom() float64 {
	return b.Pos.Y + b.H
}

// Jump spends one unit of the jump budget. It returns false when the budget
// is exhausted.
func (b *Body) Jump(p Params) bool {
	if b.JumpsLeft <= 0 {
		return false
	}
	b.JumpsLeft--
	b.Vel.Y = p.JumpImpulse
	b.Grounded = false
	return true
}

// Step advances the body by one tick. dir is the horizontal intent in
// [-1, 1]. Solids are static obstacles; bounds is the world box the body
// must stay inside, whose floor counts as ground.
func (b *Body) Step(p Params, dir float64, solids []core.RectF, bounds core.RectF) StepInfo {
	var info StepInfo
	wasGrounded := b.Grounded

	b.Vel.X = core.ClampF(dir, -1, 1) * p.MoveSpeed
	b.Vel.Y += p.Gravity
	if b.Vel.Y > p.MaxFallSpeed {
		b.Vel.Y = p.MaxFallSpeed
	}

	// Horizontal pass
	b.Pos.X += b.Vel.X
	for _, s := range solids {
		if !b.Rect().Intersects(s) {
			continue
		}
		switch {
		case b.Vel.X > 0:
			b.Pos.X = s.X - b.W
		case b.Vel.X < 0:
			b.Pos.X = s.Right()
		default:
			continue
		}
		b.Vel.X = 0
		info.HitWall = true
	}

	// Vertical pass
	b.Grounded = false
	b.Pos.Y += b.Vel.Y
	for _, s := range solids {
		if !b.Rect().Intersects(s) {
			continue
		}
		switch {
		case b.Vel.Y > 0:
			b.Pos.Y = s.Y - b.H
			b.Grounded = true
		case b.Vel.Y < 0:
			b.Pos.Y = s.Bottom()
			info.HitCeiling = true
		default:
			continue
		}
		b.Vel.Y = 0
	}

	info.HitWall = b.clampTo(bounds, &info) || info.HitWall

	if b.Grounded {
		b.JumpsLeft = p.MaxJumps
		info.Landed = !wasGrounded
	}
	return info
}

// clampTo keeps the body inside bounds. It reports whether a side wall was
// touched.
func (b *Body) clampTo(bounds core.RectF, info *StepInfo) bool {
	clamped := b.Rect().ClampInside(bounds)
	side := false

	if clamped.X != b.Pos.X {
		b.Pos.X = clamped.X
		b.Vel.X = 0
		side = true
	}
	if clamped.Y != b.Pos.Y {
		if clamped.Y < b.Pos.Y {
			b.Grounded = true
		} else {
			info.HitCeiling = true
		}
		b.Pos.Y = clamped.Y
		b.Vel.Y = 0
	}
	if b.Bottom() >= bounds.Bottom()-floorEpsilon && b.Vel.Y >= 0 {
		b.Grounded = true
		b.Vel.Y = 0
	}
	return side
}

// Resize changes the body size, keeping its feet and horizontal center in
// place. The resize is refused if the new box would overlap a solid or cannot
// fit in bounds.
func (b *Body) Resize(w, h float64, solids []core.RectF, bounds core.RectF) bool {
	if w <= 0 || h <= 0 || w > bounds.W || h > bounds.H {
		return false
	}

	cx := b.Pos.X + b.W/2
	next := core.NewRectF(cx-w/2, b.Bottom()-h, w, h).ClampInside(bounds)
	if Overlapping(next, solids) {
		return false
	}

	b.Pos = core.Vec2{X: next.X, Y: next.Y}
	b.W, b.H = w, h
	return true
}

// Overlapping reports whether r intersects any of rects.
func Overlapping(r core.RectF, rects []core.RectF) bool {
	for _, o := range rects {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
