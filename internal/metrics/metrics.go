// Package metrics holds the simulation's prometheus collectors, owned by
// a private registry rather than the global default so more than one
// Engine (as in tests) can run in the same process without colliding on
// registration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every prometheus collector the tick engine populates.
type Metrics struct {
	PhaseDuration   *prometheus.HistogramVec
	RuleErrorsTotal *prometheus.CounterVec
	CascadeWarnings prometheus.Counter
	TickDuration    prometheus.Histogram
}

// New builds the collector set and a private registry to hold it.
func New() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worldground_phase_duration_seconds",
			Help:    "Per-phase wall-clock duration within a tick",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
		RuleErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worldground_rule_errors_total",
			Help: "Rule evaluation failures, by phase and rule file",
		}, []string{"phase", "rule"}),
		CascadeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worldground_cascade_warnings_total",
			Help: "Ticks on which the per-tile error rate crossed the cascade threshold",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "worldground_tick_duration_seconds",
			Help:    "Total wall-clock duration of one full tick",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.PhaseDuration, m.RuleErrorsTotal, m.CascadeWarnings, m.TickDuration)
	return m, reg
}

// ObservePhase records one phase's duration.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordRuleError increments the per-phase-per-rule error counter. Callers
// pass the phase and rule filename from the worlderr.RuleError a script or
// native evaluation failure produced; whitelist-drop writes never reach
// here, since the Phase Executor counts those locally without attributing
// them to any one rule.
func (m *Metrics) RecordRuleError(phase, rule string) {
	m.RuleErrorsTotal.WithLabelValues(phase, rule).Inc()
}

// ObserveTick records one full tick's duration and, if warn is set, bumps
// the cascade-warning counter.
func (m *Metrics) ObserveTick(d time.Duration, warn bool) {
	m.TickDuration.Observe(d.Seconds())
	if warn {
		m.CascadeWarnings.Inc()
	}
}
