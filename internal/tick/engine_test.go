package tick

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldground/internal/scripthost"
	"worldground/internal/tile"
	"worldground/internal/topology"
	"worldground/internal/world"
)

func newTestWorld(seed int64) *world.World {
	tiles := topology.BuildTiles(topology.Params{Shape: topology.ShapeFlatHex, Radius: 2, HexSize: 1, SphereRadius: 6371000})
	return world.New(seed, tiles, 6371000, 3)
}

type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.events = append(p.events, ev)
	return nil
}

func TestTickAdvancesTickCountAndRunsAllPhases(t *testing.T) {
	w := newTestWorld(1)
	host := scripthost.New(1, nil)
	eng := New(w, host, nil, nil, Config{PhaseWorkers: 2, NativeWeather: true})

	ev, err := eng.Tick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(1), ev.TickCount)
	assert.Equal(t, uint64(1), w.TickCount)
	for i, d := range ev.PhaseTimings {
		assert.GreaterOrEqualf(t, d, float32(0), "phase %d duration should be non-negative", i)
	}
}

func TestTickAdvancesBiomeTenureWhenUnchanged(t *testing.T) {
	w := newTestWorld(1)
	host := scripthost.New(1, nil)
	eng := New(w, host, nil, nil, Config{PhaseWorkers: 1, NativeWeather: true})

	_, err := eng.Tick(context.Background())
	require.NoError(t, err)

	for _, tl := range w.Tiles {
		assert.Equal(t, int64(1), tl.Biome.TicksInCurrentBiome)
	}
}

func TestTickAdvancesSeasonAtSeasonLengthBoundary(t *testing.T) {
	w := newTestWorld(1)
	w.SeasonLength = 1
	host := scripthost.New(1, nil)
	eng := New(w, host, nil, nil, Config{PhaseWorkers: 1, NativeWeather: true})

	_, err := eng.Tick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, tile.SeasonSummer, w.Season)
}

func TestTickPublishesEventToConfiguredPublisher(t *testing.T) {
	w := newTestWorld(1)
	host := scripthost.New(1, nil)
	pub := &recordingPublisher{}
	eng := New(w, host, nil, pub, Config{PhaseWorkers: 1, NativeWeather: true})

	_, err := eng.Tick(context.Background())

	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	assert.Equal(t, uint64(1), pub.events[0].TickCount)
}

func TestTickDetectsCascadeOnPervasiveRuleFailure(t *testing.T) {
	w := newTestWorld(1)
	rules := map[tile.PhaseName][]scripthost.Rule{
		tile.PhaseTerrain: {{Name: "010.rule", Statements: []string{`set(`}}},
	}
	host := scripthost.New(1, rules)
	eng := New(w, host, nil, nil, Config{PhaseWorkers: 2})

	ev, err := eng.Tick(context.Background())

	require.NoError(t, err)
	assert.True(t, ev.CascadeWarning)
	assert.Equal(t, len(w.Tiles), ev.Stats.RuleErrorCount)
}

func TestTickIsDeterministicForFixedSeedAcrossWorkerCounts(t *testing.T) {
	w1 := newTestWorld(42)
	w2 := newTestWorld(42)
	rules := map[tile.PhaseName][]scripthost.Rule{
		tile.PhaseConditions: {{Name: "010.rule", Statements: []string{`set("conditions.soil_moisture", rand())`}}},
	}

	eng1 := New(w1, scripthost.New(42, rules), nil, nil, Config{PhaseWorkers: 1})
	eng2 := New(w2, scripthost.New(42, rules), nil, nil, Config{PhaseWorkers: 4})

	_, err1 := eng1.Tick(context.Background())
	_, err2 := eng2.Tick(context.Background())
	require.NoError(t, err1)
	require.NoError(t, err2)

	for i := range w1.Tiles {
		assert.Equal(t, w1.Tiles[i].Conditions.SoilMoisture, w2.Tiles[i].Conditions.SoilMoisture)
	}
}
