package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SideEffectFailures counts swallowed failures of best-effort side
	// effects (earnings recompute, email delivery, notification publish)
	// so they stay observable even though they never fail the request.
	SideEffectFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "side_effect_failures_total",
			Help: "Failures of best-effort side effects, by kind",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(HttpRequestsTotal, HttpRequestDuration, SideEffectFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		HttpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		HttpRequestDuration.Observe(time.Since(start).Seconds())
	})
}
