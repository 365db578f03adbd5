package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the service.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec   // labels: method, route, status
	RequestDuration *prometheus.HistogramVec // labels: method, route
	Refreshes       *prometheus.CounterVec   // labels: result=ok|error|skipped
	Lots            prometheus.Gauge
	LastRefresh     prometheus.Gauge
	MarketOpen      prometheus.Gauge // 0=closed, 1=open
	Sessions        prometheus.Gauge
}

// NewMetrics creates the metrics in their own registry, so that several servers can coexist.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "positions_http_requests_total",
			Help: "HTTP requests served",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "positions_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "positions_refresh_total",
			Help: "Snapshot refreshes by result",
		}, []string{"result"}),
		Lots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "positions_lots",
			Help: "Number of lots in the current snapshot",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "positions_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		}),
		MarketOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "positions_market_open",
			Help: "1 when the market was open at the last refresh attempt",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "positions_sessions",
			Help: "Number of stored client sessions",
		}),
	}
	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Refreshes,
		m.Lots,
		m.LastRefresh,
		m.MarketOpen,
		m.Sessions,
	)
	return m
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records the count and latency of requests, by route pattern.
func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
