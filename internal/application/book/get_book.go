package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 根据ID查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (dto *BookDTO, err error) {
	ctx, finish := startOperation(ctx, opGet, attribute.String("book.id", id))
	defer func() { finish(err) }()

	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := toBookDTO(b)
	return &out, nil
}
