// Package biome encodes which biome class transitions are legal and how
// strongly a tile resists changing class the longer it has held its
// current one. The spec leaves the adjacency graph as an open question;
// this is the concrete graph this implementation commits to.
package biome

import "worldground/internal/tile"

// adjacency is symmetric: an edge a-b permits a tile to move either way
// between the two classes in one Terrain-phase transition. A biome class
// with no entry (Rainforest, Ocean) cannot change class at all — Ocean
// because it is terrain-locked, Rainforest because the graph below
// doesn't reach it from anywhere else without passing through an
// intermediate the spec never names.
var adjacency = map[tile.BiomeClass][]tile.BiomeClass{
	tile.BiomeIce:              {tile.BiomeTundra},
	tile.BiomeTundra:           {tile.BiomeIce, tile.BiomeBorealForest},
	tile.BiomeBorealForest:     {tile.BiomeTundra, tile.BiomeTemperateForest},
	tile.BiomeTemperateForest:  {tile.BiomeBorealForest, tile.BiomeGrassland, tile.BiomeWetland},
	tile.BiomeGrassland:        {tile.BiomeTemperateForest, tile.BiomeSavanna, tile.BiomeShrubland, tile.BiomeWetland},
	tile.BiomeSavanna:          {tile.BiomeGrassland, tile.BiomeDesert},
	tile.BiomeShrubland:        {tile.BiomeGrassland, tile.BiomeDesert},
	tile.BiomeDesert:           {tile.BiomeSavanna, tile.BiomeShrubland, tile.BiomeBadlands},
	tile.BiomeWetland:          {tile.BiomeTemperateForest, tile.BiomeGrassland},
	tile.BiomeBadlands:         {tile.BiomeDesert},
	tile.BiomeRainforest:       {},
	tile.BiomeOcean:            {},
}

// AllowedTransition reports whether a tile may move directly from "from"
// to "to" in one Terrain phase. Same-class is always allowed (a no-op).
func AllowedTransition(from, to tile.BiomeClass) bool {
	if from == to {
		return true
	}
	for _, n := range adjacency[from] {
		if n == to {
			return true
		}
	}
	return false
}

// Resistance is an increasing function of how long a tile has held its
// current biome: the longer the tenure, the stronger the pull-pressure
// needed to dislodge it. Caps below 1 so a tile is never permanently
// locked in, however old.
func Resistance(ticksInCurrentBiome int64) float64 {
	const (
		base       = 0.1
		perTick    = 0.01
		resistCap  = 0.9
	)
	r := base + float64(ticksInCurrentBiome)*perTick
	if r > resistCap {
		return resistCap
	}
	return r
}

// ShouldTransition decides whether a proposed biome.type mutation takes
// effect: the move must be graph-legal, and the tile's current
// transition_pressure magnitude must meet or exceed the tenure-scaled
// resistance.
func ShouldTransition(from, to tile.BiomeClass, ticksInCurrentBiome int64, transitionPressure float64) bool {
	if from == to {
		return true
	}
	if !AllowedTransition(from, to) {
		return false
	}
	pressure := transitionPressure
	if pressure < 0 {
		pressure = -pressure
	}
	return pressure >= Resistance(ticksInCurrentBiome)
}
