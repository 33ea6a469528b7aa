package book

import (
	"time"
)

// Book 图书实体（聚合根）
// 设计说明：
// 1. ID是文档库ObjectID的十六进制字符串，创建时由存储层分配，之后不可变
// 2. Active是软删除标记;列表只返回Active=true的图书
// 3. 删除目前是物理删除，Active保留给将来的软删除
type Book struct {
	ID        string
	Title     string
	Author    string
	Pages     int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// NewBook 创建新图书（工厂方法）
// CreatedAt与UpdatedAt使用同一时刻，Active=true
func NewBook(title, author string, pages int64, now time.Time) *Book {
	return &Book{
		Title:     title,
		Author:    author,
		Pages:     pages,
		CreatedAt: now,
		UpdatedAt: now,
		Active:    true,
	}
}

// Replace 用新的三个字段生成合并后的图书（整体替换，不是部分更新）
// 业务规则：
// - ID与CreatedAt保持不变
// - UpdatedAt刷新为now
// - Active强制为true
func (b *Book) Replace(title, author string, pages int64, now time.Time) *Book {
	return &Book{
		ID:        b.ID,
		Title:     title,
		Author:    author,
		Pages:     pages,
		CreatedAt: b.CreatedAt,
		UpdatedAt: now,
		Active:    true,
	}
}
