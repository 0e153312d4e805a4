package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/event"

	"gadgetshop-be/internal/logger"
)

const unmatchedRoute = "unmatched"

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	storeCommands *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Passing a fresh registry keeps tests isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		storeCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_commands_total",
				Help: "Total number of document store commands",
			},
			[]string{"command", "outcome"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_command_duration_seconds",
				Help:    "Duration of document store commands",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.storeCommands, m.storeDuration)
	return m
}

// Middleware records per-route counters. It must sit inside the chi router so
// the route pattern is resolved by the time the handler returns.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := logger.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// CommandMonitor feeds driver command events into the store collectors.
func (m *Metrics) CommandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			m.observeCommand(e.CommandName, "success", e.Duration)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			m.observeCommand(e.CommandName, "failure", e.Duration)
		},
	}
}

func (m *Metrics) observeCommand(name, outcome string, d time.Duration) {
	m.storeCommands.WithLabelValues(name, outcome).Inc()
	m.storeDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
