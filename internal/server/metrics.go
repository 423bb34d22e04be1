package server

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thenoetrevino/clubhouse/internal/events"
)

// Metrics tracks request and event statistics. Counters live in a private
// Prometheus registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec

	EventsReceived atomic.Int64
	RequestsServed atomic.Int64
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubhouse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of HTTP requests",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clubhouse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubhouse",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "The total number of session events by type",
		}, []string{"type"}),
		StartTime: time.Now(),
	}
	m.registry.MustRegister(m.requests, m.duration, m.events)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.RequestsServed.Add(1)
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncEvent counts one session event
func (m *Metrics) IncEvent(t events.EventType) {
	m.EventsReceived.Add(1)
	m.events.WithLabelValues(string(t)).Inc()
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsReceived int64  `json:"events_received"`
	RequestsServed int64  `json:"requests_served"`
	Uptime         string `json:"uptime"`
}

// Snapshot returns a point-in-time snapshot of the counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived: m.EventsReceived.Load(),
		RequestsServed: m.RequestsServed.Load(),
		Uptime:         time.Since(m.StartTime).Round(time.Second).String(),
	}
}
