package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层(MongoDB)实现
// 2. 存储层错误以UpstreamFailure返回，不允许panic
// 3. 便于Mock测试
type Repository interface {
	// Create 插入图书，返回存储层分配的ID
	Create(ctx context.Context, book *Book) (string, error)

	// FindByID 根据ID查找图书
	// ID格式非法返回ErrInvalidID，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// Update 按book.ID整体写入字段，返回匹配的文档数
	// 不预先检查是否存在
	Update(ctx context.Context, book *Book) (int64, error)

	// FindAllActive 查询所有Active=true的图书，按标题升序
	FindAllActive(ctx context.Context) ([]*Book, error)

	// DeleteByID 物理删除，返回删除的文档数
	DeleteByID(ctx context.Context, id string) (int64, error)
}
