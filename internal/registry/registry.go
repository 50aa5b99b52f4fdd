// Package registry is the process-wide catalogue of game strategies.
// Game packages add themselves from init, so importing a game package is
// enough to make it playable and rankable.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the per-game strategy driven by the session engine.
// Games contain pure logic with no external dependencies; the engine owns
// timing, intent queuing and termination handling.
type Game interface {
	// ID is the stable key used by the CLI and the leaderboards.
	ID() string

	Title() string

	// Cadence reports how the session should schedule ticks.
	Cadence() core.Cadence

	// Reset (re)initializes entity state and zeroes the score.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by exactly one tick using the queued intents.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state onto the logical canvas.
	// The canvas is cleared before this call.
	Render(dst *core.Canvas)

	State() core.GameState
}

// GameInfo is the metadata captured from a game at registration.
type GameInfo struct {
	ID      string
	Title   string
	Cadence core.Cadence
}

// Factory builds a fresh, independent game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var catalogue = struct {
	sync.RWMutex
	byID map[string]entry
}{byID: map[string]entry{}}

// Register adds a game under id. Registering the same id twice is a
// programming error and panics.
func Register(id string, f Factory) {
	probe := f()
	e := entry{
		info:    GameInfo{ID: id, Title: probe.Title(), Cadence: probe.Cadence()},
		factory: f,
	}

	catalogue.Lock()
	defer catalogue.Unlock()
	if _, dup := catalogue.byID[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	catalogue.byID[id] = e
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	catalogue.RLock()
	out := make([]GameInfo, 0, len(catalogue.byID))
	for _, e := range catalogue.byID {
		out = append(out, e.info)
	}
	catalogue.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// IDs returns the sorted IDs of every registered game.
func IDs() []string {
	infos := List()
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	return ids
}

// Lookup returns the metadata registered under id.
func Lookup(id string) (GameInfo, bool) {
	catalogue.RLock()
	defer catalogue.RUnlock()
	e, ok := catalogue.byID[id]
	return e.info, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	catalogue.RLock()
	e, ok := catalogue.byID[id]
	catalogue.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}
