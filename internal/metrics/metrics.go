// Package metrics exposes Prometheus instrumentation for the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taskvault_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taskvault_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AuthDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taskvault_auth_decisions_total",
		Help: "API key authentication outcomes",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AuthDecisions)
}

// Auth outcome labels.
const (
	AuthOutcomeOK       = "ok"
	AuthOutcomeMissing  = "missing_api_key"
	AuthOutcomeNotFound = "api_key_not_found"
	AuthOutcomeInactive = "api_key_inactive"
	AuthOutcomeExpired  = "api_key_expired"
	AuthOutcomeError    = "internal_error"
)

// IncAuthDecision records an authentication outcome.
func IncAuthDecision(outcome string) {
	AuthDecisions.WithLabelValues(outcome).Inc()
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware instruments HTTP handlers with request count and duration.
// Route labels use the chi route pattern so path parameters don't explode
// the cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
