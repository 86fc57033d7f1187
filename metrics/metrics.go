// Package metrics exports probe activity as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig names the exported collectors.
type MetricsConfig struct {
	Namespace      string
	SubProbe       string
	SubTarget      string
	LatencyBuckets []float64
}

// DefaultConfig returns the default collector naming.
func DefaultConfig() *MetricsConfig {
	return &MetricsConfig{
		Namespace: "voltix",
		SubProbe:  "probe",
		SubTarget: "target",
		// USB round trips sit between a few hundred microseconds and a few milliseconds.
		LatencyBuckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}
}

// Metrics implements probe.Observer.
type Metrics struct {
	config *MetricsConfig

	commands       *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec
	targetSessions *prometheus.CounterVec
	targetActive   *prometheus.GaugeVec
}

// New creates the collectors with the default config and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	return NewWithConfig(reg, DefaultConfig())
}

// NewWithConfig creates the collectors and registers them on reg.
func NewWithConfig(reg prometheus.Registerer, config *MetricsConfig) *Metrics {
	m := &Metrics{
		config: config,
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace, Subsystem: config.SubProbe, Name: "commands_total",
			Help: "Probe operations by variant, operation and result"}, []string{"variant", "operation", "result"}),
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace, Subsystem: config.SubProbe, Name: "command_duration_seconds",
			Help: "Vendor command round trip time", Buckets: config.LatencyBuckets}, []string{"variant", "operation"}),
		targetSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace, Subsystem: config.SubTarget, Name: "sessions_total",
			Help: "Target sessions opened"}, []string{"variant", "kind"}),
		targetActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubTarget, Name: "sessions_active",
			Help: "Target sessions currently open"}, []string{"variant", "kind"}),
	}

	reg.MustRegister(m.commands, m.commandLatency, m.targetSessions, m.targetActive)
	return m
}

// ObserveCommand implements probe.Observer.
// Operations that never reached the wire are counted but not timed.
func (m *Metrics) ObserveCommand(variant, operation, result string, elapsed time.Duration) {
	m.commands.WithLabelValues(variant, operation, result).Inc()
	if elapsed > 0 {
		m.commandLatency.WithLabelValues(variant, operation).Observe(elapsed.Seconds())
	}
}

// ObserveTargetSession implements probe.Observer.
func (m *Metrics) ObserveTargetSession(variant, kind string, open bool) {
	if open {
		m.targetSessions.WithLabelValues(variant, kind).Inc()
		m.targetActive.WithLabelValues(variant, kind).Inc()
		return
	}
	m.targetActive.WithLabelValues(variant, kind).Dec()
}
