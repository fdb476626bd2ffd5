package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Event is something notable that happened during a tick. The platform uses
// events for sound and for requests only it can serve, such as persistence.
type Event int

const (
	EventJump Event = iota + 1
	EventLand
	EventResize
	EventDoor
	EventLevelCleared
	EventWin
	EventToggle
	EventSaveRequested
	EventLoadRequested
)

func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventLand:
		return "land"
	case EventResize:
		return "resize"
	case EventDoor:
		return "door"
	case EventLevelCleared:
		return "level_cleared"
	case EventWin:
		return "win"
	case EventToggle:
		return "toggle"
	case EventSaveRequested:
		return "save_requested"
	case EventLoadRequested:
		return "load_requested"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
