package book

import (
	"context"
	"time"
)

// 图书事件的routing key
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// BookEvent 图书变更事件
type BookEvent struct {
	Type       string    `json:"type"`
	BookID     string    `json:"book_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 图书事件发布端口
// 由infrastructure/messaging实现；发布失败只记录日志，不影响请求结果
type EventPublisher interface {
	PublishBookEvent(ctx context.Context, event BookEvent) error
}

// NoopEventPublisher 未启用消息队列时使用
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishBookEvent(context.Context, BookEvent) error { return nil }
