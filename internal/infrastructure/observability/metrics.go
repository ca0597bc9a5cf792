package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"goplanner/internal/domain/model"
)

// Metrics はアプリケーションのPrometheusメトリクス
type Metrics struct {
	registry *prometheus.Registry

	sourceRequests *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	generations    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics は専用のレジストリにメトリクスを登録する
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goplanner",
			Name:      "source_requests_total",
			Help:      "外部データソースへの取得回数",
		}, []string{"source", "result"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goplanner",
			Name:      "source_duration_seconds",
			Help:      "外部データソースの取得時間",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"source"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goplanner",
			Name:      "itinerary_generations_total",
			Help:      "旅程生成の回数（live / fallback）",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goplanner",
			Name:      "http_requests_total",
			Help:      "HTTPリクエスト数",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goplanner",
			Name:      "http_request_duration_seconds",
			Help:      "HTTPリクエストの処理時間",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sourceRequests,
		m.sourceDuration,
		m.generations,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObserveSource は各取得元の成否と所要時間を記録する
func (m *Metrics) ObserveSource(source string, success bool, elapsed time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.sourceRequests.WithLabelValues(source, result).Inc()
	m.sourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveGeneration は生成結果がliveかfallbackかを記録する
func (m *Metrics) ObserveGeneration(source model.ItinerarySource) {
	m.generations.WithLabelValues(string(source)).Inc()
}

// GinMiddleware はルート単位でリクエスト数と処理時間を記録する
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler は /metrics 用のハンドラ
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
