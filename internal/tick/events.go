// Package tick drives the fixed six-phase tick in order, compares each
// tile's layers before and after, and assembles the resulting event for
// whatever publisher the host wires up.
package tick

import (
	"worldground/internal/stats"
	"worldground/internal/tile"
)

// ChangedLayers carries only the layers that actually changed on a tile
// this tick. An unset field marshals as an omitted key, not a null.
type ChangedLayers struct {
	Weather    *tile.Weather    `json:"weather,omitempty"`
	Conditions *tile.Conditions `json:"conditions,omitempty"`
	Biome      *tile.Biome      `json:"biome,omitempty"`
	Resources  *tile.Resources  `json:"resources,omitempty"`
}

// Event is the payload published once per tick.
type Event struct {
	TickCount      uint64                `json:"tick_count"`
	Season         tile.Season           `json:"season"`
	PhaseTimings   [6]float32            `json:"phase_timings"`
	ChangedTiles   map[int]ChangedLayers `json:"changed_tiles"`
	Stats          stats.Snapshot        `json:"stats"`
	CascadeWarning bool                  `json:"cascade_warning"`
}

// diffTile returns the ChangedLayers between before and after, and
// whether anything changed at all.
func diffTile(before, after *tile.Tile) (ChangedLayers, bool) {
	var c ChangedLayers
	var any bool

	if before.Weather != after.Weather {
		w := after.Weather
		c.Weather = &w
		any = true
	}
	if before.Conditions != after.Conditions {
		cond := after.Conditions
		c.Conditions = &cond
		any = true
	}
	if before.Biome != after.Biome {
		b := after.Biome
		c.Biome = &b
		any = true
	}
	if !resourcesEqual(before.Resources, after.Resources) {
		r := after.Resources
		c.Resources = &r
		any = true
	}
	return c, any
}

func resourcesEqual(a, b tile.Resources) bool {
	if len(a.Deposits) != len(b.Deposits) {
		return false
	}
	for i := range a.Deposits {
		if !depositEqual(a.Deposits[i], b.Deposits[i]) {
			return false
		}
	}
	return true
}

func depositEqual(a, b tile.Deposit) bool {
	if a.Kind != b.Kind || a.Quantity != b.Quantity || a.MaxQuantity != b.MaxQuantity || a.RenewalRate != b.RenewalRate {
		return false
	}
	if len(a.BiomeWhitelist) != len(b.BiomeWhitelist) {
		return false
	}
	for i := range a.BiomeWhitelist {
		if a.BiomeWhitelist[i] != b.BiomeWhitelist[i] {
			return false
		}
	}
	return true
}
