// Package metrics exposes operation and policy counters in Prometheus format.
//
// Metrics:
//   - fsgate_operations_total: operations by name and outcome
//   - fsgate_policy_denials_total: refusals by policy kind
//   - fsgate_operation_duration_seconds: operation latency
//   - fsgate_policy_reloads_total: settings reloads by result
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanmxa/fsgate/internal/policy"
)

const namespace = "fsgate"

// Collector owns a private registry so tests and embedders never collide with
// the global one.
type Collector struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	denialsTotal      *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	reloadsTotal      *prometheus.CounterVec
}

// NewCollector creates a Collector. If registry is nil a new one is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of filesystem operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		denialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_denials_total",
				Help:      "Total number of operations refused by policy",
			},
			[]string{"kind"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of filesystem operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
			[]string{"operation"},
		),
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_reloads_total",
				Help:      "Total number of settings reloads by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.operationsTotal,
		c.denialsTotal,
		c.operationDuration,
		c.reloadsTotal,
	)
	return c
}

// ObserveOperation records one completed operation.
func (c *Collector) ObserveOperation(op string, kind policy.Kind, duration time.Duration) {
	outcome := "ok"
	if kind != policy.KindNone {
		outcome = kind.String()
	}
	c.operationsTotal.WithLabelValues(op, outcome).Inc()
	c.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
	if kind.IsPolicy() {
		c.denialsTotal.WithLabelValues(kind.String()).Inc()
	}
}

// ObserveReload records a settings reload attempt.
func (c *Collector) ObserveReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.reloadsTotal.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
