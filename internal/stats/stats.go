// Package stats reduces a post-tick world into the statistics the tick
// event carries: a biome histogram, a diversity index, field means, the
// accumulated rule-error count, and tick duration. It is a pure reduction
// — no writes to the world, safe to run in parallel with nothing else
// touching tile state.
package stats

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"worldground/internal/tile"
)

// Snapshot is the statistics payload attached to each tick event.
type Snapshot struct {
	BiomeHistogram map[tile.BiomeClass]int
	ShannonDiversity float64

	MeanTemperature     float64
	MeanSoilMoisture    float64
	MeanVegetationHealth float64

	RuleErrorCount int
	TickDuration   time.Duration
}

// Compute reduces tiles into a Snapshot. ruleErrorCount and tickDuration
// are threaded through from the tick engine rather than recomputed here.
func Compute(tiles []tile.Tile, ruleErrorCount int, tickDuration time.Duration) Snapshot {
	histogram := make(map[tile.BiomeClass]int)
	temps := make([]float64, len(tiles))
	moistures := make([]float64, len(tiles))
	healths := make([]float64, len(tiles))

	for i, t := range tiles {
		histogram[t.Biome.Type]++
		temps[i] = t.Weather.Temperature
		moistures[i] = t.Conditions.SoilMoisture
		healths[i] = t.Biome.VegetationHealth
	}

	return Snapshot{
		BiomeHistogram:       histogram,
		ShannonDiversity:     shannonDiversity(histogram, len(tiles)),
		MeanTemperature:      mean(temps),
		MeanSoilMoisture:     mean(moistures),
		MeanVegetationHealth: mean(healths),
		RuleErrorCount:       ruleErrorCount,
		TickDuration:         tickDuration,
	}
}

func shannonDiversity(histogram map[tile.BiomeClass]int, total int) float64 {
	if total == 0 || len(histogram) == 0 {
		return 0
	}
	probs := make([]float64, 0, len(histogram))
	for _, count := range histogram {
		if count == 0 {
			continue
		}
		probs = append(probs, float64(count)/float64(total))
	}
	return stat.Entropy(probs)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Sum(xs) / float64(len(xs))
}

// CascadeThreshold is the fraction of tile_count at which an elevated
// per-tick error count is reported as a cascade warning, not a halt.
const CascadeThreshold = 0.10

// IsCascade reports whether ruleErrorCount over tileCount crosses the
// cascade-detection threshold.
func IsCascade(ruleErrorCount, tileCount int) bool {
	if tileCount == 0 {
		return false
	}
	return float64(ruleErrorCount)/float64(tileCount) > CascadeThreshold
}
