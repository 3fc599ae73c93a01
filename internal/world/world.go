// Package world defines the World aggregate: the single owner of all
// tiles and the macro-weather state, matching the data model's Ownership
// section. Phase execution and the tick engine operate on a *World; they
// never hold a reference to an individual tile outside of it.
package world

import (
	"sync"

	"github.com/google/uuid"

	"worldground/internal/macroweather"
	"worldground/internal/tile"
)

// World owns every tile and the macro-weather state for one running
// simulation. Mutex-guarded so a dev harness can read statistics or emit
// events from another goroutine while a tick is in flight; the tick
// engine itself holds the lock only across the short window needed to
// swap in a phase's applied mutations, not across an entire phase.
type World struct {
	mu sync.RWMutex

	ID   uuid.UUID
	Seed int64

	Tiles []tile.Tile
	Macro *macroweather.MacroWeatherState

	Season       tile.Season
	SeasonLength int
	TickCount    uint64
}

// New constructs a World over the given tiles, ready for its first tick.
// sphereRadius feeds the macro-weather engine's great-circle stamping.
func New(seed int64, tiles []tile.Tile, sphereRadius float64, seasonLength int) *World {
	return &World{
		ID:           uuid.New(),
		Seed:         seed,
		Tiles:        tiles,
		Macro:        macroweather.NewState(seed, sphereRadius),
		Season:       tile.SeasonSpring,
		SeasonLength: seasonLength,
	}
}

// Snapshot returns a deep copy of the tile vector, suitable as a phase's
// read-only prior-state view. Callers must not mutate the World's own
// Tiles slice while holding a snapshot from a concurrent goroutine.
func (w *World) Snapshot() []tile.Tile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]tile.Tile, len(w.Tiles))
	for i := range w.Tiles {
		out[i] = w.Tiles[i].Clone()
	}
	return out
}

// Lock/Unlock expose the World's mutex to the tick engine for the brief
// windows around mutation application and statistics read, rather than
// duplicating a second lock at the call site.
func (w *World) Lock()    { w.mu.Lock() }
func (w *World) Unlock()  { w.mu.Unlock() }
func (w *World) RLock()   { w.mu.RLock() }
func (w *World) RUnlock() { w.mu.RUnlock() }
