package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeErrorData(t *testing.T, w *httptest.ResponseRecorder) ErrorData {
	t.Helper()
	var body ErrorData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestError_UpstreamReturnedAs400(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/books", nil)

	Error(c, logger, apperrors.Wrap(errors.New("server selection timeout"), "查询图书列表失败"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorData(t, w)
	assert.Equal(t, http.StatusBadGateway, body.Status)
	assert.Contains(t, body.Message, "查询图书列表失败")
	assert.Equal(t, 1, logs.Len(), "上游错误应记录日志")
}

func TestError_DomainError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/books/x", nil)

	Error(c, zap.New(core), apperrors.ErrInvalidIdentifier)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorData(t, w)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, apperrors.ErrInvalidIdentifier.Message, body.Message)
	assert.Zero(t, logs.Len())
}

func TestError_TooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, nil, apperrors.ErrTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSuccessHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, gin.H{"id": "abc"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Message(c, "ok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}
