// Package sound turns game events into short synthesized effects.
package sound

import "github.com/vovakirdan/sketch-arcade/internal/core"

// Effect is a synthesized sound cue.
type Effect int

const (
	EffectNone Effect = iota
	EffectJump
	EffectLand
	EffectDoor
	EffectWin
	EffectClick
	EffectResize
)

// Player plays effects. Implementations must be safe to call from the UI
// goroutine on every tick and must never block.
type Player interface {
	Play(e Effect)
	Close()
}

// Nop is a Player that plays nothing.
type Nop struct{}

func (Nop) Play(Effect) {}
func (Nop) Close()      {}

// ForEvent maps a game event to its effect.
func ForEvent(e core.Event) Effect {
	switch e {
	case core.EventJump:
		return EffectJump
	case core.EventLand:
		return EffectLand
	case core.EventDoor, core.EventLevelCleared:
		return EffectDoor
	case core.EventWin:
		return EffectWin
	case core.EventToggle, core.EventSaveRequested, core.EventLoadRequested:
		return EffectClick
	case core.EventResize:
		return EffectResize
	default:
		return EffectNone
	}
}

// PlayEvents plays the effect of every event, skipping duplicates within one
// tick.
func PlayEvents(p Player, events []core.Event) {
	if p == nil {
		return
	}
	var played [EffectResize + 1]bool
	for _, ev := range events {
		e := ForEvent(ev)
		if e == EffectNone || played[e] {
			continue
		}
		played[e] = true
		p.Play(e)
	}
}
