package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each instance owns
// its registry, so several servers (and tests) can coexist in a process.
type Metrics struct {
	registry          *prometheus.Registry
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	calculationsTotal *prometheus.CounterVec
	activeRequests    prometheus.Gauge
	handler           http.Handler
}

// NewMetrics creates and registers the server collectors together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seqcalc_requests_total",
			Help: "Total number of HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seqcalc_request_duration_seconds",
			Help:    "HTTP request latency by endpoint.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"endpoint"}),
		calculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seqcalc_calculations_total",
			Help: "Total number of calculations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seqcalc_active_requests",
			Help: "Number of HTTP requests being served.",
		}),
	}
	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.calculationsTotal,
		m.activeRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// RecordRequest counts a served request and observes its latency.
func (m *Metrics) RecordRequest(endpoint string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordCalculation counts a calculation as "success" or "error".
func (m *Metrics) RecordCalculation(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.calculationsTotal.WithLabelValues(kind, outcome).Inc()
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// endpointLabel bounds the label cardinality to the served routes.
func endpointLabel(path string) string {
	switch path {
	case "/fib", "/fac", "/program", "/health", "/metrics":
		return path
	}
	return "other"
}

// metricsMiddleware tracks active requests, totals and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := newStatusRecorder(w)
		next(rec, r)
		s.metrics.RecordRequest(endpointLabel(r.URL.Path), rec.status, time.Since(start))
	}
}
