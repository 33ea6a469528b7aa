package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（重复注册）

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, BookOperationsTotal)
	assert.NotNil(t, BookOperationDuration)
	assert.NotNil(t, CircuitBreakerState)
	assert.NotNil(t, CircuitBreakerRequests)
	assert.NotNil(t, BookEventsPublishedTotal)
}

// TestObserveBookOperation 测试图书操作计数
func TestObserveBookOperation(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(BookOperationsTotal.WithLabelValues("create", ResultSuccess))
	beforeFail := testutil.ToFloat64(BookOperationsTotal.WithLabelValues("create", ResultFailure))

	ObserveBookOperation("create", nil, 3*time.Millisecond)
	ObserveBookOperation("create", nil, 5*time.Millisecond)
	ObserveBookOperation("create", errors.New("boom"), time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(BookOperationsTotal.WithLabelValues("create", ResultSuccess)))
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(BookOperationsTotal.WithLabelValues("create", ResultFailure)))
}

// TestGaugeHelpers 测试Gauge辅助函数
func TestGaugeHelpers(t *testing.T) {
	InitMetrics()

	start := testutil.ToFloat64(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, start+1, testutil.ToFloat64(HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "mongo"}, 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongo")))
}

// TestHandler 测试/metrics端点输出
func TestHandler(t *testing.T) {
	InitMetrics()
	IncCounterVec(BookEventsPublishedTotal, map[string]string{"routing_key": "book.created", "result": ResultSuccess})

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "book_events_published_total"), "应包含事件指标")
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, ResultSuccess, ResultOf(nil))
	assert.Equal(t, ResultFailure, ResultOf(errors.New("x")))
}
