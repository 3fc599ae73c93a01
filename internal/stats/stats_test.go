package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldground/internal/tile"
)

func biomeTiles(classes ...tile.BiomeClass) []tile.Tile {
	tiles := make([]tile.Tile, len(classes))
	for i, c := range classes {
		tiles[i] = tile.Tile{ID: i}
		tiles[i].Biome.Type = c
		tiles[i].Weather.Temperature = 280 + float64(i)
		tiles[i].Conditions.SoilMoisture = 0.1 * float64(i)
		tiles[i].Biome.VegetationHealth = 0.5
	}
	return tiles
}

func TestComputeHistogramCountsEachBiome(t *testing.T) {
	tiles := biomeTiles(tile.BiomeGrassland, tile.BiomeGrassland, tile.BiomeDesert)

	snap := Compute(tiles, 0, time.Millisecond)

	assert.Equal(t, 2, snap.BiomeHistogram[tile.BiomeGrassland])
	assert.Equal(t, 1, snap.BiomeHistogram[tile.BiomeDesert])
}

func TestComputeMeansAverageAcrossTiles(t *testing.T) {
	tiles := biomeTiles(tile.BiomeGrassland, tile.BiomeGrassland)

	snap := Compute(tiles, 0, time.Millisecond)

	assert.InDelta(t, 280.5, snap.MeanTemperature, 1e-9)
	assert.InDelta(t, 0.05, snap.MeanSoilMoisture, 1e-9)
	assert.InDelta(t, 0.5, snap.MeanVegetationHealth, 1e-9)
}

func TestShannonDiversityZeroForSingleBiome(t *testing.T) {
	tiles := biomeTiles(tile.BiomeGrassland, tile.BiomeGrassland, tile.BiomeGrassland)

	snap := Compute(tiles, 0, time.Millisecond)

	assert.Equal(t, 0.0, snap.ShannonDiversity)
}

func TestShannonDiversityPositiveForMixedBiomes(t *testing.T) {
	tiles := biomeTiles(tile.BiomeGrassland, tile.BiomeDesert, tile.BiomeIce, tile.BiomeTundra)

	snap := Compute(tiles, 0, time.Millisecond)

	assert.Greater(t, snap.ShannonDiversity, 0.0)
}

func TestComputeEmptyWorldDoesNotDivideByZero(t *testing.T) {
	snap := Compute(nil, 0, time.Millisecond)

	assert.Equal(t, 0.0, snap.ShannonDiversity)
	assert.Equal(t, 0.0, snap.MeanTemperature)
}

func TestComputeThreadsThroughErrorCountAndDuration(t *testing.T) {
	snap := Compute(biomeTiles(tile.BiomeGrassland), 3, 250*time.Millisecond)

	require.Equal(t, 3, snap.RuleErrorCount)
	assert.Equal(t, 250*time.Millisecond, snap.TickDuration)
}

func TestIsCascadeTripsAboveThreshold(t *testing.T) {
	assert.False(t, IsCascade(9, 100))
	assert.True(t, IsCascade(11, 100))
}

func TestIsCascadeEmptyWorldNeverCascades(t *testing.T) {
	assert.False(t, IsCascade(5, 0))
}
