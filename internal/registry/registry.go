// Package registry is a global catalog of playable game modes. Modes
// register themselves from init() so the CLI and the TUI discover them
// without importing each game package directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tilelab/cascade/internal/core"
)

// Game is the interface every playable mode implements. A Game holds pure
// simulation and render logic; the platform owns input mapping, timing and
// terminal output.
type Game interface {
	// ID is the stable identifier used on the CLI and in score storage.
	ID() string

	// Title is the human-readable name shown in menus and the HUD.
	Title() string

	// Reset initializes or restarts the game with the given runtime
	// configuration (screen size, tick rate, seed).
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick under the given
	// input frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, pause and game-over status.
	State() core.GameState
}

// GameInfo describes one registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh instance of a mode.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a mode to the catalog. It panics on duplicate IDs since
// that is always a programming error in an init() chain.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered mode, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
