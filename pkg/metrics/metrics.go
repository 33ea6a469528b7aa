// Package metrics 提供基于Prometheus的指标收集
//
// # 指标一览
//
//   - http_requests_total{method,path,status}        HTTP请求总数
//   - http_request_duration_seconds{method,path}     HTTP请求耗时
//   - http_requests_in_progress                      正在处理的HTTP请求数
//   - book_operations_total{operation,result}        图书操作总数（create/get/update/list/delete）
//   - book_operation_duration_seconds{operation}     图书操作耗时
//   - circuit_breaker_state{name}                    熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
//   - circuit_breaker_requests_total{name,result}    熔断器请求数（success/failure/rejected/canceled）
//   - book_events_published_total{routing_key,result} 图书事件发布数
//
// # 命名规范
//
//  1. Counter以_total结尾
//  2. Histogram以单位结尾（_seconds）
//  3. 标签只使用有限取值（method、path模板、result），不要用book_id做标签
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	start := time.Now()
//	book, err := svc.Create(ctx, in)
//	metrics.ObserveBookOperation("create", err, time.Since(start))
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultCanceled = "canceled"
)

var (
	initOnce sync.Once

	// HTTP请求指标

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 图书业务指标

	BookOperationsTotal   *prometheus.CounterVec
	BookOperationDuration *prometheus.HistogramVec

	// 熔断器指标

	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec

	// 事件发布指标

	BookEventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 多次调用是安全的，只有第一次生效
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书操作总数",
			},
			[]string{"operation", "result"},
		)

		// 单次文档读写通常在毫秒级
		BookOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "book_operation_duration_seconds",
				Help:    "图书操作耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		BookEventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_events_published_total",
				Help: "图书事件发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// Handler 暴露/metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ResultOf 根据错误返回result标签值
func ResultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveBookOperation 记录一次图书操作（次数 + 耗时）
// 未调用InitMetrics时静默跳过
func ObserveBookOperation(operation string, err error, elapsed time.Duration) {
	if BookOperationsTotal == nil {
		return
	}
	BookOperationsTotal.WithLabelValues(operation, ResultOf(err)).Inc()
	BookOperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
