package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// 文档字段名
const (
	fieldID        = "_id"
	fieldTitle     = "title"
	fieldAuthor    = "author"
	fieldPages     = "pages"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
	fieldActive    = "active"
)

// bookDocument Book集合中的文档
// 设计说明：
// 1. 这是infrastructure层的存储模型，包含bson tag
// 2. domain/book/entity.go是领域实体，ID以十六进制字符串表示
// 3. 插入时ID为零值，由omitempty交给驱动生成ObjectID
type bookDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	Pages     int64              `bson:"pages"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	Active    bool               `bson:"active"`
}

func toDocument(b *book.Book) *bookDocument {
	return &bookDocument{
		Title:     b.Title,
		Author:    b.Author,
		Pages:     b.Pages,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Active:    b.Active,
	}
}

// toBookEntity 文档 → 领域实体
// Date只有毫秒精度，读回的时间统一为UTC
func toBookEntity(doc *bookDocument) *book.Book {
	return &book.Book{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		Author:    doc.Author,
		Pages:     doc.Pages,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
		Active:    doc.Active,
	}
}

// parseID 十六进制字符串 → ObjectID，格式错误返回ErrInvalidID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, book.ErrInvalidID
	}
	return oid, nil
}
