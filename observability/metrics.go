package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "greenroute"

// Route query outcomes used as the "outcome" label.
const (
	OutcomeFound    = "found"
	OutcomeNoRoute  = "no_route"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics groups every collector the application exports. Each instance
// owns its registry, so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Loads         *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
	Nodes         prometheus.Gauge
	Edges         prometheus.Gauge
	Islands       prometheus.Gauge
	Routes        *prometheus.CounterVec
	RouteDuration *prometheus.HistogramVec
	RouteCost     *prometheus.HistogramVec
	HTTPRequests  *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry. Go runtime and
// process collectors are included when withRuntime is true.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "network_loads_total",
			Help:      "Network loads by result.",
		}, []string{"result"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "network_load_duration_seconds",
			Help:      "Time spent reading and building a network snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_nodes",
			Help:      "Nodes in the current snapshot.",
		}),
		Edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_edges",
			Help:      "Undirected edges in the current snapshot.",
		}),
		Islands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_islands",
			Help:      "Connected components in the current snapshot.",
		}),
		Routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_queries_total",
			Help:      "Route queries by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		RouteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_query_duration_seconds",
			Help:      "Route search latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"strategy"}),
		RouteCost: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_cost",
			Help:      "Cost of found routes.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"strategy"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.Loads, m.LoadDuration, m.Nodes, m.Edges, m.Islands,
		m.Routes, m.RouteDuration, m.RouteCost, m.HTTPRequests,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// Registry exposes the underlying registry, e.g. for testutil.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLoad records a finished load attempt.
func (m *Metrics) ObserveLoad(ok bool, took time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.Loads.WithLabelValues(result).Inc()
	m.LoadDuration.Observe(took.Seconds())
}

// SetShape publishes the size of the current snapshot.
func (m *Metrics) SetShape(nodes, edges, islands int) {
	if m == nil {
		return
	}
	m.Nodes.Set(float64(nodes))
	m.Edges.Set(float64(edges))
	m.Islands.Set(float64(islands))
}

// ObserveRoute records one route query. cost is only observed for found routes.
func (m *Metrics) ObserveRoute(strategy, outcome string, took time.Duration, cost float64) {
	if m == nil {
		return
	}
	m.Routes.WithLabelValues(strategy, outcome).Inc()
	m.RouteDuration.WithLabelValues(strategy).Observe(took.Seconds())
	if outcome == OutcomeFound {
		m.RouteCost.WithLabelValues(strategy).Observe(cost)
	}
}
