package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RepliesTotal counts composed replies by the path that produced them.
	RepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "replies_total",
			Help:      "Composed replies by mode (templated, augmented, fallback)",
		},
		[]string{"mode"},
	)

	// DelegateRequestsTotal counts augmentation calls by outcome.
	DelegateRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "delegate_requests_total",
			Help:      "Augmentation delegate calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	DelegateRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus",
			Name:      "delegate_request_duration_seconds",
			Help:      "Augmentation delegate call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(RepliesTotal)
	prometheus.MustRegister(DelegateRequestsTotal)
	prometheus.MustRegister(DelegateRequestDuration)
}

// Filter records HTTP request duration and count per route template.
func Filter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	status := strconv.Itoa(resp.StatusCode())
	path := normalizePath(req.SelectedRoutePath())
	method := req.Request.Method

	httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// normalizePath keeps label cardinality bounded.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
