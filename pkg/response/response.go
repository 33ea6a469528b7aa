package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// ErrorData 错误响应体
// 设计说明：
// 1. Status是错误的名义状态码（400/502），不一定等于HTTP状态码
// 2. 所有业务错误统一以HTTP 400返回（与客户端既有约定保持一致）
type ErrorData struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// MessageData 仅包含提示信息的响应体
type MessageData struct {
	Message string `json:"message"`
}

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200响应，body为{"message": ...}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageData{Message: message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, logger, err)
//	    return
//	}
func Error(c *gin.Context, logger *zap.Logger, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只记录日志
	if appErr.Err != nil && logger != nil {
		logger.Error("request failed",
			zap.String("kind", string(appErr.Kind)),
			zap.Int("status", appErr.Status),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(appErr.Err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(httpStatus(appErr), ErrorData{
		Message: appErr.Message,
		Status:  appErr.Status,
	})
}

// httpStatus 业务错误一律返回400，限流错误返回429
func httpStatus(appErr *apperrors.AppError) int {
	if appErr.Kind == apperrors.KindTooManyRequests {
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}
