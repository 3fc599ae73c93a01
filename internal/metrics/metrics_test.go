package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePhaseRecordsIntoHistogram(t *testing.T) {
	m, _ := New()

	assert.NotPanics(t, func() {
		m.ObservePhase("weather", 5*time.Millisecond)
	})
}

func TestRecordRuleErrorIncrementsCounter(t *testing.T) {
	m, _ := New()
	m.RecordRuleError("terrain", "010.rule")
	m.RecordRuleError("terrain", "010.rule")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RuleErrorsTotal.WithLabelValues("terrain", "010.rule")))
}

func TestObserveTickIncrementsCascadeCounterOnlyWhenWarned(t *testing.T) {
	m, _ := New()
	m.ObserveTick(10*time.Millisecond, false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CascadeWarnings))

	m.ObserveTick(10*time.Millisecond, true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CascadeWarnings))
}

func TestNewRegistersAgainstAPrivateRegistry(t *testing.T) {
	m1, reg1 := New()
	m2, reg2 := New()

	assert.NotPanics(t, func() {
		m1.ObservePhase("weather", time.Millisecond)
		m2.ObservePhase("weather", time.Millisecond)
	})
	assert.NotSame(t, reg1, reg2)
}
