package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// DeletedMessage 删除成功的提示信息
const DeletedMessage = "图书删除成功"

// DeleteBookUseCase 删除图书用例（物理删除）
type DeleteBookUseCase struct {
	bookService book.Service
	events      EventPublisher
	logger      *zap.Logger
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, events EventPublisher, logger *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		events:      events,
		logger:      logger,
	}
}

// DeleteBookResponse 删除响应DTO
type DeleteBookResponse struct {
	Message string `json:"message"`
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) (resp *DeleteBookResponse, err error) {
	ctx, finish := startOperation(ctx, opDelete, attribute.String("book.id", id))
	defer func() { finish(err) }()

	if err := uc.bookService.DeleteByID(ctx, id); err != nil {
		return nil, err
	}

	publish(ctx, uc.events, uc.logger, BookEvent{
		Type:       EventBookDeleted,
		BookID:     id,
		OccurredAt: time.Now().UTC(),
	})

	return &DeleteBookResponse{Message: DeletedMessage}, nil
}
