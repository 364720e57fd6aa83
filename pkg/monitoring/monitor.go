package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// TutorCalls counts completion-provider round trips per operation.
	TutorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_provider_calls_total",
			Help: "Total number of completion provider calls",
		},
		[]string{"operation", "outcome"},
	)

	// TutorTokens accumulates token usage reported by the provider.
	TutorTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_provider_tokens_total",
			Help: "Total tokens consumed by completion provider calls",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TutorCalls)
	prometheus.MustRegister(TutorTokens)
}

// ObserveTutorCall records one provider round trip and its token usage.
func ObserveTutorCall(operation string, err error, promptTokens, completionTokens int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	TutorCalls.WithLabelValues(operation, outcome).Inc()
	if err == nil {
		TutorTokens.WithLabelValues("prompt").Add(float64(promptTokens))
		TutorTokens.WithLabelValues("completion").Add(float64(completionTokens))
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
