package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例
// 更新是整体替换：title、author、pages必须同时提供
type UpdateBookUseCase struct {
	bookService book.Service
	events      EventPublisher
	logger      *zap.Logger
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, events EventPublisher, logger *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		events:      events,
		logger:      logger,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	ID     string
	Title  *string
	Author *string
	Pages  *int64
}

// Execute 执行更新用例，返回更新后的图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (dto *BookDTO, err error) {
	ctx, finish := startOperation(ctx, opUpdate, attribute.String("book.id", req.ID))
	defer func() { finish(err) }()

	b, err := uc.bookService.Update(ctx, req.ID, book.UpdateInput{
		Title:  req.Title,
		Author: req.Author,
		Pages:  req.Pages,
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, uc.logger, BookEvent{
		Type:       EventBookUpdated,
		BookID:     b.ID,
		Title:      b.Title,
		OccurredAt: b.UpdatedAt,
	})

	out := toBookDTO(b)
	return &out, nil
}
