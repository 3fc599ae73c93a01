// Command worldground is a dev harness for exercising the simulation
// engine locally: build a small synthetic world, optionally load rule
// scripts, run a fixed number of ticks, and print the resulting
// statistics. It is not the operator-facing CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"worldground/internal/config"
	"worldground/internal/logging"
	"worldground/internal/metrics"
	"worldground/internal/scripthost"
	"worldground/internal/tick"
	"worldground/internal/tile"
	"worldground/internal/topology"
	"worldground/internal/world"
)

var (
	configPath string
	ruleDir    string
	ticks      int
	tileRadius int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{Use: "worldground"}
	root.AddCommand(runCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a synthetic world and run it for a fixed number of ticks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(context.Background())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (optional, defaults used if unset)")
	cmd.Flags().StringVar(&ruleDir, "rules", "", "path to a rule directory tree (optional; native evaluation used if unset)")
	cmd.Flags().IntVar(&ticks, "ticks", 10, "number of ticks to run")
	cmd.Flags().IntVar(&tileRadius, "radius", 4, "flat-hex torus half-width for the synthetic world ((2*radius+1)^2 tiles)")
	return cmd
}

func runHarness(ctx context.Context) error {
	logging.Init(true)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if ruleDir != "" {
		cfg.RuleDirectory = ruleDir
	}

	tiles := topology.BuildTiles(topology.Params{
		Shape:        topology.ShapeFlatHex,
		Radius:       tileRadius,
		HexSize:      1,
		SphereRadius: 6371000,
	})
	w := world.New(cfg.WorldSeed, tiles, 6371000, cfg.SeasonLength)
	ctx = logging.WithWorld(ctx, w.ID.String())

	var rules map[tile.PhaseName][]scripthost.Rule
	if cfg.RuleDirectory != "" {
		loaded, err := scripthost.Load(cfg.RuleDirectory)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		rules = loaded
	}
	host := scripthost.New(cfg.WorldSeed, rules)

	m, _ := metrics.New()
	engine := tick.New(w, host, m, nil, tick.Config{
		PhaseWorkers:  cfg.PhaseWorkers,
		NativeWeather: cfg.NativeWeather,
	})

	log.Info().Str("world_id", w.ID.String()).Int("tile_count", len(w.Tiles)).Int("ticks", ticks).Msg("starting run")

	var final tick.Event
	for i := 0; i < ticks; i++ {
		ev, err := engine.Tick(ctx)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
		logging.LogTick(ctx, ev.TickCount, ev.Stats.TickDuration, ev.Stats.RuleErrorCount, ev.CascadeWarning)
		final = ev
	}

	log.Info().
		Float64("mean_temperature", final.Stats.MeanTemperature).
		Float64("shannon_diversity", final.Stats.ShannonDiversity).
		Int("rule_errors", final.Stats.RuleErrorCount).
		Bool("cascade_warning", final.CascadeWarning).
		Msg("run complete")
	return nil
}
