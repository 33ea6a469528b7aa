package dto

import (
	"time"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
)

// CreateBookRequest HTTP创建请求
// 字段使用指针区分"缺失"和"零值"：缺少任一字段返回参数无效，空字符串和0页是合法的
type CreateBookRequest struct {
	Title  *string `json:"title" example:"Dom Casmurro"`
	Author *string `json:"author" example:"Machado de Assis"`
	Pages  *int64  `json:"pages" example:"256"`
}

// UpdateBookRequest HTTP更新请求（整体替换，三个字段都必须提供）
type UpdateBookRequest struct {
	Title  *string `json:"title" example:"Dom Casmurro"`
	Author *string `json:"author" example:"Machado de Assis"`
	Pages  *int64  `json:"pages" example:"256"`
}

// CreateBookResponse 创建成功返回新ID
type CreateBookResponse struct {
	ID string `json:"id" example:"65a4f0c2e4b0a1b2c3d4e5f6"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        string    `json:"id" example:"65a4f0c2e4b0a1b2c3d4e5f6"`
	Title     string    `json:"title" example:"Dom Casmurro"`
	Author    string    `json:"author" example:"Machado de Assis"`
	Pages     int64     `json:"pages" example:"256"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00.000Z"`
	Active    bool      `json:"active" example:"true"`
}

// NewBookResponse 应用层DTO → HTTP响应
func NewBookResponse(b *appbook.BookDTO) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Pages:     b.Pages,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Active:    b.Active,
	}
}

// NewBookListResponse 列表为空时返回[]而不是null
func NewBookListResponse(list []appbook.BookDTO) []BookResponse {
	out := make([]BookResponse, len(list))
	for i := range list {
		out[i] = *NewBookResponse(&list[i])
	}
	return out
}

// MessageResponse 提示信息
type MessageResponse struct {
	Message string `json:"message" example:"图书删除成功"`
}

// HealthResponse 健康检查
type HealthResponse struct {
	Status string `json:"status" example:"Ok"`
}
