package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// 指标和Span中的操作名
const (
	opCreate = "create"
	opGet    = "get"
	opUpdate = "update"
	opList   = "list"
	opDelete = "delete"
)

// startOperation 为一次用例执行开启Span并计时
// 返回的finish记录book_operations_total和耗时，并结束Span
func startOperation(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracing.TracerName, "BookUseCase."+op,
		trace.WithAttributes(append(attrs, attribute.String("book.operation", op))...),
	)

	return ctx, func(err error) {
		metrics.ObserveBookOperation(op, err, time.Since(start))
		tracing.EndSpan(span, err)
	}
}

// publish 发布事件，失败只记录日志
func publish(ctx context.Context, events EventPublisher, logger *zap.Logger, event BookEvent) {
	if err := events.PublishBookEvent(ctx, event); err != nil {
		logger.Warn("图书事件发布失败",
			zap.String("event", event.Type),
			zap.String("book_id", event.BookID),
			zap.Error(err),
		)
	}
}
