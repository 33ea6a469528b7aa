package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID 请求ID响应头
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID gin.Context中的请求ID键
	ContextKeyRequestID = "request_id"

	// maxRequestIDLen 上游请求ID的最大长度
	maxRequestIDLen = 64
)

// RequestID 请求ID中间件
// 上游X-Request-ID合法时沿用，否则生成UUID
// 请求ID会进入响应头、日志和Span，只接受有限长度的字母、数字和 - _ . :
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
