// Package metrics holds the Prometheus collectors shared by the HTTP
// and storage adapters, plus the scrape endpoint handler.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	// RequestDuration tracks end-to-end request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wishlist_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// QueryDuration tracks database call latency by operation kind.
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wishlist_db_query_duration_seconds",
		Help:    "Database call latency by operation.",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"op"})

	// AssignmentRuns counts Secret Santa runs by outcome.
	AssignmentRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_assignment_runs_total",
		Help: "Assignment generator runs by outcome (ok, infeasible, error).",
	}, []string{"outcome"})
)

// ObserveRequest records one handled request.
func ObserveRequest(method, path string, status int, seconds float64) {
	RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
