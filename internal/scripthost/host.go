package scripthost

import (
	"context"
	"time"

	"github.com/Knetic/govaluate"

	"worldground/internal/tile"
	"worldground/internal/worlderr"
)

// Host evaluates loaded rules against tile snapshots. One Host is built
// per loaded rule set and reused across the whole run; it holds no
// per-tile state between calls.
type Host struct {
	WorldSeed   int64
	Rules       map[tile.PhaseName][]Rule
	Limits      Limits
	RuleTimeout time.Duration
	OnLog       func(phase tile.PhaseName, tileID int, rule, msg string)
}

// New builds a Host with the sandbox's default limits and a 10ms per-tile
// rule timeout, matching the sandbox limits table's stated default.
func New(worldSeed int64, rules map[tile.PhaseName][]Rule) *Host {
	return &Host{
		WorldSeed:   worldSeed,
		Rules:       rules,
		Limits:      DefaultLimits(),
		RuleTimeout: 10 * time.Millisecond,
	}
}

// EvaluateTile runs every rule for the given phase against self's
// snapshot, with neighbors resolved against the same snapshot. It returns
// the accumulated, last-writer-wins-by-filename mutation set for this
// tile, or a *worlderr.RuleError if any rule failed or the per-tile
// wall-clock timeout elapsed.
func (h *Host) EvaluateTile(parent context.Context, phase tile.PhaseName, self tile.Tile, neighbors []tile.Tile, season tile.Season, tick uint64) ([]Mutation, error) {
	ctx, cancel := context.WithTimeout(parent, h.RuleTimeout)
	defer cancel()

	type result struct {
		muts []Mutation
		err  error
	}
	done := make(chan result, 1)
	go func() {
		muts, err := h.runRules(phase, self, neighbors, season, tick)
		done <- result{muts, err}
	}()

	select {
	case r := <-done:
		return r.muts, r.err
	case <-ctx.Done():
		return nil, &worlderr.RuleError{TileID: self.ID, Phase: string(phase), Rule: "(timeout)", Cause: ctx.Err()}
	}
}

func (h *Host) runRules(phase tile.PhaseName, self tile.Tile, neighbors []tile.Tile, season tile.Season, tick uint64) ([]Mutation, error) {
	selfEnv := tileEnv(&self)
	neighborEnv := make([]interface{}, len(neighbors))
	for i := range neighbors {
		neighborEnv[i] = tileEnv(&neighbors[i])
	}

	var mutations []Mutation
	for _, rule := range h.Rules[phase] {
		rng := newXorshift64(h.WorldSeed, self.ID, tick, phase)
		ops := 0
		for _, stmt := range rule.Statements {
			var logged string
			funcs := buildFunctions(rng, h.Limits, &mutations, func(msg string) { logged = msg })
			expr, err := govaluate.NewEvaluableExpressionWithFunctions(stmt, funcs)
			if err != nil {
				return nil, &worlderr.RuleError{TileID: self.ID, Phase: string(phase), Rule: rule.Name, Cause: err}
			}
			ops += len(expr.Tokens())
			if ops > h.Limits.MaxOps {
				return nil, &worlderr.RuleError{TileID: self.ID, Phase: string(phase), Rule: rule.Name, Cause: errOpBudgetExceeded}
			}
			params := map[string]interface{}{
				"self":      selfEnv,
				"neighbors": neighborEnv,
				"season":    string(season),
				"tick":      float64(tick),
			}
			for k, v := range selfEnv {
				if _, exists := params[k]; !exists {
					params[k] = v
				}
			}
			if _, err := expr.Evaluate(params); err != nil {
				return nil, &worlderr.RuleError{TileID: self.ID, Phase: string(phase), Rule: rule.Name, Cause: err}
			}
			if logged != "" && h.OnLog != nil {
				h.OnLog(phase, self.ID, rule.Name, logged)
			}
		}
	}
	return mutations, nil
}

var errOpBudgetExceeded = &opBudgetError{}

type opBudgetError struct{}

func (e *opBudgetError) Error() string { return "operation budget exceeded for this rule invocation" }
