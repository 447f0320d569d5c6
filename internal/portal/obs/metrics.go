// Package obs carries the service's Prometheus instrumentation.
package obs

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fomenta_build_info",
			Help: "Build information, value is always 1.",
		},
		[]string{"version"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fomenta_http_requests_total",
			Help: "HTTP requests by method and status class.",
		},
		[]string{"method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fomenta_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fomenta_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fomenta_login_attempts_total",
			Help: "Login attempts by role and outcome.",
		},
		[]string{"role", "outcome"},
	)
)

// Init registers the collectors (once) and stamps build_info.
func Init(version string) {
	registerOnce.Do(func() {
		prometheus.MustRegister(buildInfo, httpRequests, httpDuration, httpInFlight, loginAttempts)
	})
	buildInfo.WithLabelValues(version).Set(1)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordLogin counts one login attempt. outcome is "success" or "failure".
func RecordLogin(role, outcome string) {
	loginAttempts.WithLabelValues(role, outcome).Inc()
}

// HTTPMiddleware instruments every request.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		httpRequests.WithLabelValues(r.Method, statusClass(rw.status)).Inc()
		httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
