// Package logging configures the process-wide zerolog logger and a
// per-world child logger carried through context, the way the teacher's
// own internal/logging does for HTTP requests, minus anything
// HTTP-specific: there is no request here, only a world and a tick.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const loggerKey contextKey = "logger"

// Init configures the global logger. console selects the human-readable
// writer (dev harness); false selects plain JSON (a service deployment).
func Init(console bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// WithWorld returns a context carrying a logger tagged with worldID, for
// every log line emitted while driving that world's ticks.
func WithWorld(ctx context.Context, worldID string) context.Context {
	logger := log.With().Str("world_id", worldID).Logger()
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or the global logger
// if none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// LogTick logs one tick's summary: duration, rule-error count, and
// whether it tripped the cascade-warning threshold.
func LogTick(ctx context.Context, tickCount uint64, duration time.Duration, ruleErrors int, cascade bool) {
	event := FromContext(ctx).Info().
		Uint64("tick", tickCount).
		Dur("duration", duration).
		Int("rule_errors", ruleErrors)
	if cascade {
		event = event.Bool("cascade_warning", true)
	}
	event.Msg("tick completed")
}

// LogRuleError logs one tile's rule failure at warn level; the tick
// itself still commits, per the cascade-is-a-signal-not-a-halt contract.
func LogRuleError(ctx context.Context, phase string, tileID int, err error) {
	FromContext(ctx).Warn().
		Str("phase", phase).
		Int("tile_id", tileID).
		Err(err).
		Msg("rule evaluation failed")
}
