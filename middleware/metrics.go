package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	prometheusLabelRoute  = "route"
	prometheusLabelStatus = "status"
	prometheusLabelTask   = "task"
	prometheusLabelSource = "source"
)

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	registry    *prometheus.Registry
	durations   *prometheus.SummaryVec
	requests    *prometheus.CounterVec
	generations *prometheus.CounterVec
	scores      prometheus.Histogram
}

// NewMetrics creates and registers the collectors on a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		durations: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "seo_http_request_duration_seconds",
				Help:       "request duration per route",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{prometheusLabelRoute},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_http_requests_total",
				Help: "number of requests per route and status code",
			},
			[]string{prometheusLabelRoute, prometheusLabelStatus},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_generations_total",
				Help: "generations per task and where the result came from",
			},
			[]string{prometheusLabelTask, prometheusLabelSource},
		),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seo_overall_score",
			Help:    "distribution of overall SEO scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
	}

	m.registry.MustRegister(
		m.durations,
		m.requests,
		m.generations,
		m.scores,
	)

	return m
}

// Instrument records duration and status code of every request
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.durations.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// ObserveGeneration counts one generation of task served from source
func (m *Metrics) ObserveGeneration(task, source string) {
	m.generations.WithLabelValues(task, source).Inc()
}

// ObserveScore records one overall score
func (m *Metrics) ObserveScore(score float64) {
	m.scores.Observe(score)
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
