// Package messaging 图书事件发布(RabbitMQ)
package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

// ExchangeType 图书事件使用Topic Exchange，消费方可绑定book.*
const ExchangeType = "topic"

// messagePublisher mq.Publisher中用到的方法
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookEventPublisher 实现application层的EventPublisher
type BookEventPublisher struct {
	publisher messagePublisher
}

var _ appbook.EventPublisher = (*BookEventPublisher)(nil)

// NewBookEventPublisher 创建事件发布者
func NewBookEventPublisher(publisher messagePublisher) *BookEventPublisher {
	return &BookEventPublisher{publisher: publisher}
}

// PublishBookEvent 以事件类型作为routing key发布
func (p *BookEventPublisher) PublishBookEvent(ctx context.Context, event appbook.BookEvent) error {
	err := p.publisher.Publish(ctx, event.Type, event)
	metrics.IncCounterVec(metrics.BookEventsPublishedTotal, map[string]string{
		"routing_key": event.Type,
		"result":      metrics.ResultOf(err),
	})
	if err != nil {
		return fmt.Errorf("发布%s事件失败: %w", event.Type, err)
	}
	return nil
}

// NewEventPublisher 根据配置创建事件发布者
// mq.enabled=false时返回NoopEventPublisher;返回的cleanup负责关闭连接
func NewEventPublisher(cfg *config.Config, logger *zap.Logger) (appbook.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		logger.Info("未启用图书事件发布")
		return appbook.NoopEventPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, ExchangeType)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("图书事件发布已启用", zap.String("exchange", publisher.Exchange()))

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return NewBookEventPublisher(publisher), cleanup, nil
}
