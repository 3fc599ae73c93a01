package phase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldground/internal/scripthost"
	"worldground/internal/tile"
	"worldground/internal/world"
)

func chainTiles(n int) []tile.Tile {
	tiles := make([]tile.Tile, n)
	for i := range tiles {
		var neighbors []int
		if i > 0 {
			neighbors = append(neighbors, i-1)
		}
		if i < n-1 {
			neighbors = append(neighbors, i+1)
		}
		tiles[i] = tile.Tile{ID: i, Neighbors: neighbors}
	}
	return tiles
}

func TestRunAppliesWhitelistedScriptedMutations(t *testing.T) {
	w := world.New(1, chainTiles(3), 6371, 20)
	host := scripthost.New(1, map[tile.PhaseName][]scripthost.Rule{
		tile.PhaseWeather: {{Name: "010.rule", Statements: []string{`set("weather.humidity", 0.7)`}}},
	})
	exec := New(host, Config{Workers: 2})

	result := exec.Run(context.Background(), w, tile.PhaseWeather, tile.SeasonSpring, 1)

	require.Equal(t, 0, result.ErrorCount)
	for _, tl := range w.Tiles {
		assert.Equal(t, 0.7, tl.Weather.Humidity)
	}
}

func TestRunDropsOutOfWhitelistWrites(t *testing.T) {
	w := world.New(1, chainTiles(1), 6371, 20)
	host := scripthost.New(1, map[tile.PhaseName][]scripthost.Rule{
		tile.PhaseWeather: {{Name: "010.rule", Statements: []string{`set("conditions.soil_moisture", 0.9)`}}},
	})
	exec := New(host, Config{Workers: 1})

	result := exec.Run(context.Background(), w, tile.PhaseWeather, tile.SeasonSpring, 1)

	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 0.0, w.Tiles[0].Conditions.SoilMoisture)
}

func TestRunIsolatesPerTileRuleErrors(t *testing.T) {
	w := world.New(1, chainTiles(2), 6371, 20)
	host := scripthost.New(1, map[tile.PhaseName][]scripthost.Rule{
		// Malformed expression errors for every tile, but other tiles must
		// still be attempted independently.
		tile.PhaseWeather: {{Name: "010.rule", Statements: []string{`set(`}}},
	})
	exec := New(host, Config{Workers: 2})

	result := exec.Run(context.Background(), w, tile.PhaseWeather, tile.SeasonSpring, 1)

	assert.Equal(t, 2, result.ErrorCount)
}

func TestRunNativeWeatherWritesWholeLayer(t *testing.T) {
	w := world.New(1, chainTiles(1), 6371, 20)
	w.Tiles[0].Weather.Humidity = 0.4
	exec := New(scripthost.New(1, nil), Config{Workers: 1, NativeWeather: true})

	result := exec.Run(context.Background(), w, tile.PhaseWeather, tile.SeasonSpring, 1)

	require.Equal(t, 0, result.ErrorCount)
	assert.GreaterOrEqual(t, w.Tiles[0].Weather.Humidity, 0.0)
	// Fields the test never set are written by the native chain too.
	assert.Equal(t, tile.PrecipitationNone, w.Tiles[0].Weather.PrecipClass)
	assert.Equal(t, tile.DefaultPressureHPa, w.Tiles[0].Weather.Pressure)
}
