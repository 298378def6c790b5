package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Latency of the recommendation HTTP handlers, by endpoint (list, debug, profile)
	RecommendHandlerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_handler_latency_seconds",
		Help:    "Latency of recommendation HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// Total number of recommendation requests, by endpoint and HTTP status class
	RecommendHandlerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_handler_requests_total",
		Help: "Total number of recommendation HTTP requests",
	}, []string{"endpoint", "status"})

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RecommendHandlerLatency,
			RecommendHandlerRequests,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StatusClass buckets an HTTP status code into "2xx", "4xx", "5xx", ...
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
