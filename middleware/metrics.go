package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "firstnight",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// requestTotal counts all HTTP requests.
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "firstnight",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// requestInFlight tracks how many requests are currently being served.
	requestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "firstnight",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

// metricsRegistry is the Prometheus registry exposed at /metrics.
var metricsRegistry = prometheus.NewRegistry()

func init() {
	metricsRegistry.MustRegister(collectors.NewGoCollector())
	metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsRegistry.MustRegister(requestDuration, requestTotal, requestInFlight)
}

// Metrics records Prometheus metrics for every request: duration
// histogram, total counter, and in-flight gauge. Uses the route
// template (not the raw path) to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestInFlight.Inc()
		defer requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// MetricsHandler exposes the Prometheus metrics page; mount on GET /metrics.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return gin.WrapH(h)
}
