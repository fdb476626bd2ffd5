package core

// Button is a one-row clickable label such as "[Save]".
type Button struct {
	X, Y  int
	Label string
}

// Width returns the button width in cells.
func (b Button) Width() int {
	return len([]rune(b.Label))
}

// Rect returns the button's cell area.
func (b Button) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width(), H: 1}
}

// Pressed reports whether the pointer is a fresh press on the button.
// Drags never press buttons.
func (b Button) Pressed(p *Pointer) bool {
	if p == nil || p.Held {
		return false
	}
	return b.Rect().Contains(p.X, p.Y)
}

// Draw renders the label in the given color.
func (b Button) Draw(dst *Screen, c Color) {
	dst.DrawTextColor(b.X, b.Y, b.Label, c)
}
