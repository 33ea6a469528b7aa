package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
// 设计说明：
// 1. 应用层负责用例编排：调用领域服务、发布事件、记录日志和指标
// 2. 参数校验由领域服务负责（三个字段必须同时提供）
type CreateBookUseCase struct {
	bookService book.Service
	events      EventPublisher
	logger      *zap.Logger
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, events EventPublisher, logger *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		events:      events,
		logger:      logger,
	}
}

// CreateBookRequest 创建请求DTO
// 指针为nil表示请求体中缺少该字段
type CreateBookRequest struct {
	Title  *string
	Author *string
	Pages  *int64
}

// CreateBookResponse 创建响应DTO
type CreateBookResponse struct {
	ID string `json:"id"`
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *CreateBookResponse, err error) {
	ctx, finish := startOperation(ctx, opCreate)
	defer func() { finish(err) }()

	id, err := uc.bookService.Create(ctx, book.CreateInput{
		Title:  req.Title,
		Author: req.Author,
		Pages:  req.Pages,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("图书创建成功", zap.String("book_id", id), zap.String("title", *req.Title))

	publish(ctx, uc.events, uc.logger, BookEvent{
		Type:       EventBookCreated,
		BookID:     id,
		Title:      *req.Title,
		OccurredAt: time.Now().UTC(),
	})

	return &CreateBookResponse{ID: id}, nil
}
