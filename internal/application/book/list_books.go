package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 只返回active=true的图书，按标题升序
// 2. 不分页，结果集为空时返回空数组而不是null
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context) (list []BookDTO, err error) {
	ctx, finish := startOperation(ctx, opList)
	defer func() { finish(err) }()

	books, err := uc.bookService.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	list = make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = toBookDTO(b)
	}
	return list, nil
}
