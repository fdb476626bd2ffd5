package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up, jump in the platformer
	ActionDown           // S, Down arrow - move cursor down, stop in the platformer
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - primary action
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart or regenerate
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionGrow           // + or = - enlarge the player
	ActionShrink         // - or _ - shrink the player
	ActionToggle         // Space/Enter in the grid sketch
	ActionClear          // C - clear the grid sketch
	ActionSave           // F5 - save to the fixed slot
	ActionLoad           // F9 - load from the fixed slot
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionGrow:    "Grow",
	ActionShrink:  "Shrink",
	ActionToggle:  "Toggle",
	ActionClear:   "Clear",
	ActionSave:    "Save",
	ActionLoad:    "Load",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Pointer is a mouse or touch contact in screen cells.
type Pointer struct {
	X, Y int
	// Held is true for drag/motion updates while the contact is down,
	// false for the initial press.
	Held bool
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
	// Pointer is the latest contact seen this frame, nil if none.
	Pointer *Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Point records a pointer contact. A fresh press wins over a drag seen in the
// same frame.
func (f *InputFrame) Point(x, y int, held bool) {
	if f.Pointer != nil && !f.Pointer.Held && held {
		return
	}
	f.Pointer = &Pointer{X: x, Y: y, Held: held}
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Pointer == nil
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Pointer != nil {
		p := *f.Pointer
		clone.Pointer = &p
	}
	return clone
}
