// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "grid", "platformer").
	// Used for CLI commands, score storage and save slots.
	ID() string

	// Title returns a human-readable name for display (e.g., "Grid Sketch").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions and pointer contacts.
	// Returns the current game state and the events raised during the tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Persistent is implemented by games that can be saved to and restored from
// a single fixed slot. The platform owns the storage; games only encode and
// decode their state.
type Persistent interface {
	// SaveKey is the fixed slot name the game saves under.
	SaveKey() string

	// MarshalSave encodes the state worth restoring as JSON.
	MarshalSave() ([]byte, error)

	// UnmarshalSave restores state from MarshalSave output. On error the
	// current state is left untouched.
	UnmarshalSave(data []byte) error
}

// AsPersistent returns the game's Persistent implementation, if any.
func AsPersistent(g Game) (Persistent, bool) {
	p, ok := g.(Persistent)
	return p, ok
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	// Variant marks alternate modes of another game (e.g. a sandbox). They
	// are reachable through that game's mode selector rather than the menu.
	Variant bool
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	register(id, f, false)
}

// RegisterVariant adds an alternate mode of an existing game.
func RegisterVariant(id string, f Factory) {
	register(id, f, true)
}

func register(id string, f Factory, variant bool) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Get title by creating a temporary instance
	entries[id] = entry{
		factory: f,
		info:    GameInfo{ID: id, Title: f().Title(), Variant: variant},
	}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Primary returns registered games excluding variants, sorted by ID.
func Primary() []GameInfo {
	all := List()
	result := all[:0]
	for _, g := range all {
		if !g.Variant {
			result = append(result, g)
		}
	}
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
