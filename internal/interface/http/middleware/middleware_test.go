package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookshelf/pkg/tracing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("生成新ID", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("沿用上游ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "upstream-42")
		w := serve(r, req)
		assert.Equal(t, "upstream-42", w.Header().Get(HeaderRequestID))
	})

	rejected := map[string]string{
		"超长":      strings.Repeat("a", maxRequestIDLen+1),
		"含空格":     "abc def",
		"含控制字符":   "abc\x7fdef",
		"含非ASCII": "请求-1",
	}
	for name, upstream := range rejected {
		t.Run("拒绝非法上游ID/"+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderRequestID, upstream)
			w := serve(r, req)

			id := w.Header().Get(HeaderRequestID)
			assert.NotEqual(t, upstream, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "应替换为新生成的UUID")
			assert.Equal(t, id, w.Body.String())
		})
	}

	t.Run("长度上限内的ID可用", func(t *testing.T) {
		upstream := strings.Repeat("b", maxRequestIDLen)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, upstream)
		w := serve(r, req)
		assert.Equal(t, upstream, w.Header().Get(HeaderRequestID))
	})
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/books/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/books/1", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.NotEmpty(t, first["request_id"])

	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestTracing_ServerSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exporter))
	tracing.Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(Tracing())
	r.GET("/books/:id", func(c *gin.Context) {
		assert.NotEmpty(t, tracing.ExtractTraceID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/books/abc", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /books/:id", spans[0].Name)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, zap.NewNop())
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "突发配额用尽")
	assert.True(t, rl.Allow("10.0.0.2"), "不同IP独立计数")

	rl.evictIdle(time.Now().Add(limiterIdleTTL + time.Second))
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()

	rl.Stop()
	rl.Stop()
}
