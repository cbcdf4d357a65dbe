package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/typebusio/typebus/pkg/eventbus"
)

// Metrics observes a bus through the eventbus.Hooks interface and exposes
// its activity as prometheus metrics. All updates happen on the bus's
// goroutine under its single-threaded discipline; scrapes read the metric
// values through the client library, which is safe concurrently.
type Metrics struct {
	posted      *prometheus.CounterVec
	dispatched  *prometheus.CounterVec
	invoked     *prometheus.CounterVec
	processRuns prometheus.Counter
	drained     prometheus.Counter
	pending     prometheus.Gauge
	callbacks   *prometheus.GaugeVec
}

var _ eventbus.Hooks = (*Metrics)(nil)
var _ prometheus.Collector = (*Metrics)(nil)

// NewMetrics creates bus metrics under the given namespace. Register the
// result with a prometheus registry and pass it as eventbus Config.Hooks.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		posted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_posted_total",
			Help:      "Messages appended to the deferred queue, by type.",
		}, []string{"type"}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dispatched_total",
			Help:      "Fan-outs that reached at least one callback, by type.",
		}, []string{"type"}),
		invoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_invoked_total",
			Help:      "Callback invocations across all fan-outs, by type.",
		}, []string{"type"}),
		processRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_runs_total",
			Help:      "Process calls, including ones that drained nothing.",
		}),
		drained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_drained_total",
			Help:      "Deferred messages dispatched and discarded by Process.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_messages",
			Help:      "Current deferred-queue depth.",
		}),
		callbacks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_callbacks",
			Help:      "Currently registered callbacks, by type.",
		}, []string{"type"}),
	}
}

// Register registers all bus metrics with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return reg.Register(m)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.posted.Describe(ch)
	m.dispatched.Describe(ch)
	m.invoked.Describe(ch)
	m.processRuns.Describe(ch)
	m.drained.Describe(ch)
	m.pending.Describe(ch)
	m.callbacks.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.posted.Collect(ch)
	m.dispatched.Collect(ch)
	m.invoked.Collect(ch)
	m.processRuns.Collect(ch)
	m.drained.Collect(ch)
	m.pending.Collect(ch)
	m.callbacks.Collect(ch)
}

// CallbackRegistered implements eventbus.Hooks.
func (m *Metrics) CallbackRegistered(key eventbus.Key, listenerID int) {
	m.callbacks.WithLabelValues(key.String()).Inc()
}

// CallbacksRemoved implements eventbus.Hooks.
func (m *Metrics) CallbacksRemoved(key eventbus.Key, listenerID int, count int) {
	m.callbacks.WithLabelValues(key.String()).Sub(float64(count))
}

// Posted implements eventbus.Hooks.
func (m *Metrics) Posted(key eventbus.Key, messageID string) {
	m.posted.WithLabelValues(key.String()).Inc()
	m.pending.Inc()
}

// Dispatched implements eventbus.Hooks.
func (m *Metrics) Dispatched(key eventbus.Key, delivered int) {
	m.dispatched.WithLabelValues(key.String()).Inc()
	m.invoked.WithLabelValues(key.String()).Add(float64(delivered))
}

// Processed implements eventbus.Hooks.
func (m *Metrics) Processed(drained int) {
	m.processRuns.Inc()
	m.drained.Add(float64(drained))
	m.pending.Sub(float64(drained))
}
