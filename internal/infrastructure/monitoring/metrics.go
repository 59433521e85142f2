// Package monitoring 提供 Prometheus 指標：HTTP 請求、資料庫查詢與搜尋結果。
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe"

// Metrics 服務指標，nil 時所有方法皆為空操作
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	activeRequests  prometheus.Gauge

	queryDuration *prometheus.HistogramVec
	dbErrors      *prometheus.CounterVec

	searches      *prometheus.CounterVec
	searchResults prometheus.Histogram
}

// NewMetrics 建立獨立的 registry 並註冊所有指標
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_active_requests",
				Help:      "Number of active HTTP requests",
			},
		),

		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query"},
		),
		dbErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_errors_total",
				Help:      "Total number of failed database queries",
			},
			[]string{"query"},
		),

		searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of recipe searches",
			},
			[]string{"mode", "pantry"},
		),
		searchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of matching recipes per search",
				Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 500, 1000, 10000},
			},
		),
	}
}

// Registry 指標所在的 registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RequestStarted 進行中的請求加一
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.activeRequests.Inc()
}

// RecordRequest 記錄一次請求，path 為路由樣板
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.activeRequests.Dec()
	statusStr := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// ObserveQuery 記錄查詢耗時，失敗時累加錯誤計數
func (m *Metrics) ObserveQuery(name string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.dbErrors.WithLabelValues(name).Inc()
	}
}

// ObserveSearch 記錄一次搜尋與結果數
func (m *Metrics) ObserveSearch(mode string, pantryMatch bool, results int64) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(mode, strconv.FormatBool(pantryMatch)).Inc()
	m.searchResults.Observe(float64(results))
}

// Handler /metrics 端點
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
