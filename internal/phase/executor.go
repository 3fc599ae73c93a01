// Package phase drives a single tick phase: snapshot the world, evaluate
// every tile in parallel against that snapshot, then apply the resulting
// mutations with clamping and per-phase whitelisting.
package phase

import (
	"context"
	"time"

	"worldground/internal/nativeweather"
	"worldground/internal/scripthost"
	"worldground/internal/tile"
	"worldground/internal/world"
	"worldground/internal/worlderr"
)

// Config controls one Executor's behavior.
type Config struct {
	Workers       int // <=0 uses runtime.GOMAXPROCS(0)
	NativeWeather bool
}

// Result summarizes one phase's run for the tick engine's timing array
// and statistics.
type Result struct {
	Phase      tile.PhaseName
	Duration   time.Duration
	ErrorCount int
	RuleErrors []*worlderr.RuleError
}

// Executor runs phases against a World using a shared script host.
type Executor struct {
	Host   *scripthost.Host
	Config Config
}

func New(host *scripthost.Host, cfg Config) *Executor {
	return &Executor{Host: host, Config: cfg}
}

// tileOutcome is one tile's evaluation result, produced by the parallel
// pass and consumed by the sequential apply pass.
type tileOutcome struct {
	mutations         []scripthost.Mutation
	native            *tile.Weather
	soilMoistureDelta float64
	err               error
}

// Run executes phase against w: snapshot, parallel evaluate, per-tile
// isolation, then a single locked apply pass.
func (e *Executor) Run(ctx context.Context, w *world.World, phase tile.PhaseName, season tile.Season, tick uint64) Result {
	start := time.Now()
	snapshot := w.Snapshot()
	outcomes := make([]tileOutcome, len(snapshot))

	useNative := phase == tile.PhaseWeather && e.Config.NativeWeather

	_ = forEachIndex(ctx, len(snapshot), e.Config.Workers, func(ctx context.Context, i int) error {
		self := snapshot[i]
		if useNative {
			weather, soilMoistureDelta := nativeweather.EvaluateTile(&self, season)
			outcomes[i] = tileOutcome{native: &weather, soilMoistureDelta: soilMoistureDelta}
			return nil
		}

		neighbors := make([]tile.Tile, len(self.Neighbors))
		for j, nID := range self.Neighbors {
			if nID >= 0 && nID < len(snapshot) {
				neighbors[j] = snapshot[nID]
			}
		}
		muts, err := e.Host.EvaluateTile(ctx, phase, self, neighbors, season, tick)
		outcomes[i] = tileOutcome{mutations: muts, err: err}
		return nil
	})

	errCount := 0
	var ruleErrors []*worlderr.RuleError
	w.Lock()
	for i := range outcomes {
		o := &outcomes[i]
		if o.err != nil {
			errCount++
			if re, ok := o.err.(*worlderr.RuleError); ok {
				ruleErrors = append(ruleErrors, re)
			}
			continue
		}
		t := &w.Tiles[i]
		if o.native != nil {
			t.Weather = *o.native
			// Snowmelt's soil-moisture contribution (spec: snowmelt
			// "contributes soil moisture and humidity") rides alongside the
			// Weather write since conditions.soil_moisture has no other path
			// out of the Weather phase's whitelist.
			t.Conditions.SoilMoisture += o.soilMoistureDelta
			t.ClampAll()
			continue
		}
		errCount += applyMutations(t, phase, o.mutations)
	}
	w.Unlock()

	return Result{Phase: phase, Duration: time.Since(start), ErrorCount: errCount, RuleErrors: ruleErrors}
}
