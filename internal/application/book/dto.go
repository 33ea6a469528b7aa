package book

import (
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookDTO 图书输出DTO
type BookDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Pages     int64     `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active"`
}

func toBookDTO(b *book.Book) BookDTO {
	return BookDTO{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Pages:     b.Pages,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Active:    b.Active,
	}
}
