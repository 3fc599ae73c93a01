package tick

import (
	"context"
	"fmt"
	"sync"
	"time"

	"worldground/internal/logging"
	"worldground/internal/metrics"
	"worldground/internal/phase"
	"worldground/internal/scripthost"
	"worldground/internal/stats"
	"worldground/internal/tile"
	"worldground/internal/world"
)

// Publisher is the minimal surface the tick engine needs to emit an
// event; internal/eventstream provides both implementations.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Config controls one Engine's behavior.
type Config struct {
	PhaseWorkers  int
	NativeWeather bool

	// TickInterval is the real-world time between ticks when running in
	// background mode via Start. Zero means Start refuses to run (use
	// Tick/Step for driven execution instead, as the test suite and the
	// dev harness do).
	TickInterval time.Duration
}

// State is the Engine's run state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateStopping State = "stopping"
	StateError    State = "error"
)

// Stats summarizes the Engine's lifetime for an operator or test to poll.
type Stats struct {
	State        State
	TickCount    uint64
	RealElapsed  time.Duration
	TicksPerSec  float64
	LastTickTime time.Time
}

// Engine drives one World through repeated ticks, one fixed phase order
// per tick: MacroWeather, Weather, Conditions, Terrain, Resources,
// Statistics. It can be driven one tick at a time (Tick, Step) or run in
// the background on its own ticker (Start/Stop/Pause/Resume).
type Engine struct {
	World     *world.World
	Host      *scripthost.Host
	Metrics   *metrics.Metrics
	Publisher Publisher
	Config    Config

	executors map[tile.PhaseName]*phase.Executor

	mu        sync.RWMutex
	state     State
	startTime time.Time
	lastTick  time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds an Engine over w, evaluating scripted phases with host. m and
// pub may be nil; a nil Publisher means Tick doesn't publish anything.
func New(w *world.World, host *scripthost.Host, m *metrics.Metrics, pub Publisher, cfg Config) *Engine {
	e := &Engine{World: w, Host: host, Metrics: m, Publisher: pub, Config: cfg, state: StateIdle}
	e.executors = map[tile.PhaseName]*phase.Executor{
		tile.PhaseWeather: phase.New(host, phase.Config{Workers: cfg.PhaseWorkers, NativeWeather: cfg.NativeWeather}),
		tile.PhaseConditions: phase.New(host, phase.Config{Workers: cfg.PhaseWorkers}),
		tile.PhaseTerrain:    phase.New(host, phase.Config{Workers: cfg.PhaseWorkers}),
		tile.PhaseResources:  phase.New(host, phase.Config{Workers: cfg.PhaseWorkers}),
	}
	return e
}

// State returns the Engine's current run state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Stats returns a snapshot of the Engine's run statistics.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	elapsed := time.Since(e.startTime)
	tps := 0.0
	if elapsed.Seconds() > 0 {
		tps = float64(e.World.TickCount) / elapsed.Seconds()
	}
	return Stats{
		State:        e.state,
		TickCount:    e.World.TickCount,
		RealElapsed:  elapsed,
		TicksPerSec:  tps,
		LastTickTime: e.lastTick,
	}
}

// Start begins running ticks in the background on Config.TickInterval. A
// second Start while already running is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.state == StateRunning {
		e.mu.Unlock()
		return nil
	}
	if e.Config.TickInterval <= 0 {
		e.mu.Unlock()
		return fmt.Errorf("tick: TickInterval must be positive to run in background, use Step instead")
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.state = StateRunning
	e.startTime = time.Now()
	e.mu.Unlock()

	e.wg.Add(1)
	go e.runLoop(ctx)
	return nil
}

// Stop halts the background loop and blocks until it has exited.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != StateRunning && e.state != StatePaused {
		e.mu.Unlock()
		return
	}
	e.state = StateStopping
	cancel := e.cancel
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()

	e.mu.Lock()
	e.state = StateIdle
	e.mu.Unlock()
}

// Pause suspends the background loop without exiting it; Resume restarts
// it from the same point.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		e.state = StatePaused
	}
}

// Resume restarts a paused background loop.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePaused {
		e.state = StateRunning
	}
}

// Step advances the simulation by exactly n ticks, synchronously,
// regardless of the background loop's state. Used by tests and the dev
// harness for deterministic, driven execution.
func (e *Engine) Step(ctx context.Context, n int) ([]Event, error) {
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		ev, err := e.Tick(ctx)
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// runLoop is the background ticker loop. A panic raised on this goroutine
// during a tick is recovered and moves the Engine to StateError rather
// than crashing the process; phases of that tick which had already
// applied their mutations stay applied to the World.
func (e *Engine) runLoop(ctx context.Context) {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.mu.Lock()
			e.state = StateError
			e.mu.Unlock()
		}
	}()

	ticker := time.NewTicker(e.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.mu.RLock()
			state := e.state
			e.mu.RUnlock()
			if state != StateRunning {
				continue
			}
			if _, err := e.Tick(ctx); err != nil {
				e.mu.Lock()
				e.state = StateError
				e.mu.Unlock()
				return
			}
		}
	}
}

// Tick runs exactly one tick against e.World and returns the resulting
// event. Errors from Publisher.Publish are returned but don't unwind the
// tick itself: the tick has already committed by the time publishing is
// attempted.
func (e *Engine) Tick(ctx context.Context) (Event, error) {
	tickStart := time.Now()
	w := e.World

	before := w.Snapshot()

	w.Lock()
	w.TickCount++
	tickNum := w.TickCount
	macroStart := time.Now()
	w.Macro.Update(w.Tiles, w.Season)
	macroDur := time.Since(macroStart)
	w.Unlock()

	var timings [6]float32
	timings[tile.PhaseIndex(tile.PhaseMacroWeather)] = float32(macroDur.Seconds())
	if e.Metrics != nil {
		e.Metrics.ObservePhase(string(tile.PhaseMacroWeather), macroDur)
	}

	totalErrors := 0
	for _, p := range []tile.PhaseName{tile.PhaseWeather, tile.PhaseConditions, tile.PhaseTerrain, tile.PhaseResources} {
		result := e.executors[p].Run(ctx, w, p, w.Season, tickNum)
		timings[tile.PhaseIndex(p)] = float32(result.Duration.Seconds())
		totalErrors += result.ErrorCount
		if e.Metrics != nil {
			e.Metrics.ObservePhase(string(p), result.Duration)
			for _, re := range result.RuleErrors {
				e.Metrics.RecordRuleError(re.Phase, re.Rule)
			}
		}
		for _, re := range result.RuleErrors {
			logging.LogRuleError(ctx, re.Phase, re.TileID, re)
		}
	}

	statsStart := time.Now()
	w.Lock()
	tileCount := len(w.Tiles)
	advanceBiomeTenure(before, w.Tiles)
	snap := stats.Compute(w.Tiles, totalErrors, time.Since(tickStart))
	changed := diffAll(before, w.Tiles)
	w.Unlock()
	timings[tile.PhaseIndex(tile.PhaseStatistics)] = float32(time.Since(statsStart).Seconds())

	cascade := stats.IsCascade(totalErrors, tileCount)

	if w.SeasonLength > 0 && tickNum%uint64(w.SeasonLength) == 0 {
		w.Lock()
		w.Season = w.Season.Next()
		w.Unlock()
	}

	ev := Event{
		TickCount:      tickNum,
		Season:         w.Season,
		PhaseTimings:   timings,
		ChangedTiles:   changed,
		Stats:          snap,
		CascadeWarning: cascade,
	}

	tickDur := time.Since(tickStart)
	if e.Metrics != nil {
		e.Metrics.ObserveTick(tickDur, cascade)
	}

	e.mu.Lock()
	e.lastTick = time.Now()
	e.mu.Unlock()

	if e.Publisher != nil {
		if err := e.Publisher.Publish(ctx, ev); err != nil {
			return ev, err
		}
	}
	return ev, nil
}

// advanceBiomeTenure increments ticks_in_current_biome for every tile
// whose biome class didn't change this tick. The Terrain phase already
// resets the counter to 0 on an accepted transition (internal/phase's
// apply step), so this only needs to handle the "no change" case.
func advanceBiomeTenure(before []tile.Tile, after []tile.Tile) {
	for i := range after {
		if before[i].Biome.Type == after[i].Biome.Type {
			after[i].Biome.TicksInCurrentBiome++
		}
	}
}

func diffAll(before, after []tile.Tile) map[int]ChangedLayers {
	out := make(map[int]ChangedLayers)
	for i := range after {
		layers, any := diffTile(&before[i], &after[i])
		if any {
			out[after[i].ID] = layers
		}
	}
	return out
}
