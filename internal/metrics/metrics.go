// Package metrics wraps the Prometheus collectors the simulation exposes.
// The shape is adapted from package-level promauto vars on the global
// registry (fine for a single long-lived server process) to an instance
// owning its own prometheus.Registry, since a test harness or an embedding
// AI loop may construct many SimulationEngines in one process and promauto
// would panic on the second registration of the same metric name.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the simulation's counters and histograms. A nil *Metrics is
// valid everywhere below: every method no-ops on a nil receiver, so callers
// that don't care about metrics can pass nil instead of threading a
// conditional through every call site — untracked runs pay nothing.
type Metrics struct {
	registry *prometheus.Registry

	ticksTotal       prometheus.Counter
	tickDuration     prometheus.Histogram
	cascadeDepth     prometheus.Histogram
	overrunsTotal    prometheus.Counter
	refillRetryTotal prometheus.Counter
	bombsActivated   prometheus.Counter
}

// New creates a Metrics instance registered to its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_ticks_total",
			Help: "Total ticks executed across all runs.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match3_tick_duration_seconds",
			Help:    "Wall-clock time spent inside a single tick call.",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match3_cascade_depth",
			Help:    "Number of distinct match-phase executions per run_until_stable call.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		overrunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_simulation_overruns_total",
			Help: "Total run_until_stable calls that exhausted max_ticks_per_run.",
		}),
		refillRetryTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_refill_retries_total",
			Help: "Total refill draws that required a retry to avoid an immediate match.",
		}),
		bombsActivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_bombs_activated_total",
			Help: "Total power-up tiles activated, including chain detonations.",
		}),
	}
	reg.MustRegister(m.ticksTotal, m.tickDuration, m.cascadeDepth,
		m.overrunsTotal, m.refillRetryTotal, m.bombsActivated)
	return m
}

// Registry exposes the underlying registry for an embedding process to serve
// over its own /metrics handler; returns nil on a nil Metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveTick(seconds float64) {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
	m.tickDuration.Observe(seconds)
}

func (m *Metrics) ObserveCascadeDepth(depth int) {
	if m == nil {
		return
	}
	m.cascadeDepth.Observe(float64(depth))
}

func (m *Metrics) RecordOverrun() {
	if m == nil {
		return
	}
	m.overrunsTotal.Inc()
}

func (m *Metrics) RecordRefillRetry() {
	if m == nil {
		return
	}
	m.refillRetryTotal.Inc()
}

func (m *Metrics) RecordBombActivated(count int) {
	if m == nil {
		return
	}
	m.bombsActivated.Add(float64(count))
}
