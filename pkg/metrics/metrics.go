package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector 指标收集器
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge

	pushTasksTotal  *prometheus.CounterVec
	liveSubscribers prometheus.Gauge
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		dbConnectionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_active",
				Help: "Number of active database connections",
			},
		),
		dbConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		pushTasksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "live_push_tasks_total",
				Help: "Total number of live push tasks by result",
			},
			[]string{"result"},
		),
		liveSubscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "live_subscribers",
				Help: "Number of connected live-channel subscribers",
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (c *Collector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBStats 记录数据库连接池指标
func (c *Collector) RecordDBStats(stats sql.DBStats) {
	c.dbConnectionsActive.Set(float64(stats.InUse))
	c.dbConnectionsIdle.Set(float64(stats.Idle))
}

// RecordPushTask 记录推送任务结果 (ok / retry / dropped)
func (c *Collector) RecordPushTask(result string) {
	c.pushTasksTotal.WithLabelValues(result).Inc()
}

// SubscriberConnected 订阅者上线
func (c *Collector) SubscriberConnected() { c.liveSubscribers.Inc() }

// SubscriberDisconnected 订阅者下线
func (c *Collector) SubscriberDisconnected() { c.liveSubscribers.Dec() }

var (
	globalCollector *Collector
	globalOnce      sync.Once
)

// GetGlobalCollector 获取全局收集器（惰性初始化）
func GetGlobalCollector() *Collector {
	globalOnce.Do(func() {
		globalCollector = NewCollector()
	})
	return globalCollector
}
