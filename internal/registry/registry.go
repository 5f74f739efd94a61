// Package registry maps game identifiers to factories. Each game mode
// registers itself in init(), so the CLI and the TUI can list and start
// modes without importing them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blockblast/internal/core"
)

// Game is what the platform drives every frame.
// Implementations hold pure logic; input mapping, timing and terminal
// output belong to the platform.
type Game interface {
	// ID returns the identifier used on the command line and as the
	// storage key (e.g. "blast", "blast_timed").
	ID() string

	// Title returns a human-readable name (e.g. "Block Blast").
	Title() string

	// Reset starts a new session sized for the screen in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input, including the elapsed time.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. The screen is cleared by Render.
	Render(dst *core.Screen)

	// State returns score and status flags.
	State() core.GameState
}

// Resizable games accept new screen dimensions without restarting.
type Resizable interface {
	Resize(w, h int)
}

// Persistent games can serialize a session in progress.
// SaveVersion tags the format SaveData writes.
type Persistent interface {
	SaveVersion() string
	SaveData() ([]byte, error)
	LoadData(data []byte) error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID         string
	Title      string
	Persistent bool
}

// Factory creates a fresh, not yet Reset game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	_, persistent := g.(Persistent)
	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: g.Title(), Persistent: persistent}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Info returns the description of id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
