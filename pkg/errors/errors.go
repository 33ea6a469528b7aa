package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别
// 设计说明：
// 1. Kind决定错误在服务边界的语义（参数错误、ID错误、记录不存在、上游失败...）
// 2. errors.Is按Kind匹配，同类错误即使Message不同也视为同一种错误
type Kind string

const (
	KindInvalidParameters Kind = "InvalidParameters"
	KindInvalidIdentifier Kind = "InvalidIdentifier"
	KindNotFound          Kind = "NotFound"
	KindUpstreamFailure   Kind = "UpstreamFailure"
	KindDeleteFailed      Kind = "DeleteFailed"
	KindTooManyRequests   Kind = "TooManyRequests"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Status是错误的名义状态码（400/502），写入响应体的status字段
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志（不序列化）
type AppError struct {
	Kind    Kind   `json:"-"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s %d] %s: %v", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s %d] %s", e.Kind, e.Status, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按Kind比较
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New 创建新的AppError
func New(kind Kind, status int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

// Wrap 包装上游错误（数据库、消息队列等）
// 提示信息沿用底层错误文本，便于客户端定位上游问题
func Wrap(err error, message string) *AppError {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %v", message, err)
	}
	return &AppError{
		Kind:    KindUpstreamFailure,
		Status:  http.StatusBadGateway,
		Message: msg,
		Err:     err,
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInvalidParameters = New(KindInvalidParameters, http.StatusBadRequest, "参数无效")
	ErrInvalidIdentifier = New(KindInvalidIdentifier, http.StatusBadRequest, "ID无效")
	ErrNotFound          = New(KindNotFound, http.StatusBadRequest, "记录不存在")
	ErrUpstreamFailure   = New(KindUpstreamFailure, http.StatusBadGateway, "上游服务错误")
	ErrDeleteFailed      = New(KindDeleteFailed, http.StatusBadGateway, "删除失败")
	ErrTooManyRequests   = New(KindTooManyRequests, http.StatusTooManyRequests, "请求过于频繁")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成UpstreamFailure）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "上游服务错误")
}
