// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method and response status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifehub_http_requests_total",
		Help: "HTTP requests processed, by method and status code.",
	}, []string{"method", "status"})

	// RequestDuration observes request latency in seconds.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lifehub_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifehub_rate_limited_total",
		Help: "Requests rejected with 429 by the rate limiter.",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request count and latency for every handled request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		RequestDuration.Observe(time.Since(start).Seconds())
	})
}
