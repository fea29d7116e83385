// Package registry provides a global registry for minigame factories.
// Minigames register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-engine/internal/config"
	"github.com/vovakirdan/minigame-engine/internal/core"
	"github.com/vovakirdan/minigame-engine/internal/physics"
	"github.com/vovakirdan/minigame-engine/internal/session"
)

// Game is the interface every hosted minigame implements.
// Games contain pure logic with no terminal dependencies; the platform handles
// input mapping, timing and rendering. Each game owns exactly one session
// controller and reports gameplay outcomes only through its public API.
type Game interface {
	// ID returns a unique identifier (e.g. "sharpshooter"), used for CLI
	// commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset clears the playfield and starts a fresh session.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick of cfg.TickSeconds().
	Step(in core.InputFrame) core.StepResult

	// Render draws the playfield into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the coarse game state.
	State() core.GameState

	// Session returns the controller driving this game.
	Session() *session.Controller
}

// Autopilot is implemented by games that can play themselves, used by
// headless simulation.
type Autopilot interface {
	// Autopilot returns the input a simple bot would give this tick.
	Autopilot() core.InputFrame
}

// Options carries per-instance configuration into a factory.
type Options struct {
	Config config.Config
	Stage  physics.Stage
	IDs    session.IDGenerator // nil means random UUIDs
	Logger *log.Logger         // nil discards
}

// DefaultOptions returns built-in configuration and the first built-in stage.
func DefaultOptions() Options {
	return Options{
		Config: config.Default(),
		Stage:  config.DefaultStages()[0],
	}
}

// SessionOptions converts the options into controller options.
func (o Options) SessionOptions() []session.Option {
	var opts []session.Option
	if o.IDs != nil {
		opts = append(opts, session.WithIDGenerator(o.IDs))
	}
	if o.Logger != nil {
		opts = append(opts, session.WithLogger(o.Logger))
	}
	return opts
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(opts Options) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if the ID is taken or the factory fails on default options.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Get title by creating a temporary instance
	g, err := f(DefaultOptions())
	if err != nil {
		panic(fmt.Sprintf("registry: game %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
