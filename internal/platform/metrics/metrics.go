// Package metrics exposes Prometheus collectors for tool calls, lineup
// transactions and ESPN provider requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "espn_mcp"

// Registry owns a private Prometheus registry. All methods are safe on a
// nil receiver so callers can run without metrics.
type Registry struct {
	registry *prometheus.Registry

	toolCalls          *prometheus.CounterVec
	toolDuration       *prometheus.HistogramVec
	lineupTransactions *prometheus.CounterVec
	providerRequests   *prometheus.CounterVec
	providerDuration   *prometheus.HistogramVec
	circuitState       *prometheus.GaugeVec
}

func New(namespace string) *Registry {
	if namespace == "" {
		namespace = defaultNamespace
	}

	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool calls by tool and outcome kind.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		lineupTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineup_transactions_total",
			Help:      "Lineup transactions by terminal state.",
		}, []string{"state"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "ESPN requests by operation and response class.",
		}, []string{"operation", "status"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "ESPN request latency including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"operation"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_circuit_state",
			Help:      "Circuit breaker state: 0 closed, 1 half open, 2 open.",
		}, []string{"breaker"}),
	}

	reg.MustRegister(
		r.toolCalls,
		r.toolDuration,
		r.lineupTransactions,
		r.providerRequests,
		r.providerDuration,
		r.circuitState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) ObserveToolCall(tool, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.toolCalls.WithLabelValues(tool, outcome).Inc()
	r.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveLineupTransaction(state string) {
	if r == nil {
		return
	}
	r.lineupTransactions.WithLabelValues(state).Inc()
}

func (r *Registry) ObserveProviderRequest(operation, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.providerRequests.WithLabelValues(operation, status).Inc()
	r.providerDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveCircuitState records a breaker transition. Unknown states are
// ignored.
func (r *Registry) ObserveCircuitState(breaker, state string) {
	if r == nil {
		return
	}
	v, ok := circuitStateValues[state]
	if !ok {
		return
	}
	r.circuitState.WithLabelValues(breaker).Set(v)
}

var circuitStateValues = map[string]float64{
	"closed":    0,
	"half_open": 1,
	"open":      2,
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{})
}
