package platformer

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
	StateError        GameStateType = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Level     int // Current level (1-indexed for display)
	Score     int
	X, Y      float64
	VX, VY    float64
	W, H      float64
	Grounded  bool
	JumpsLeft int
	Solids    int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.loadErr != nil:
		state = StateError
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Level:  g.levelIndex + 1,
		Score:  g.score,
		Solids: len(g.solids),
		State:  state,
	}
	if b := g.body; b != nil {
		snap.X, snap.Y = b.Pos.X, b.Pos.Y
		snap.VX, snap.VY = b.Vel.X, b.Vel.Y
		snap.W, snap.H = b.W, b.H
		snap.Grounded = b.Grounded
		snap.JumpsLeft = b.JumpsLeft
	}
	return snap
}
