package book

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// CreateInput 创建图书的输入
// 字段都是可选类型，但语义上全部必填（只检查是否存在，不检查空字符串和正数）
type CreateInput struct {
	Title  *string
	Author *string
	Pages  *int64
}

// UpdateInput 更新图书的输入
// 与CreateInput相同：三个字段必须同时提供，更新是整体替换
type UpdateInput struct {
	Title  *string
	Author *string
	Pages  *int64
}

// Service 图书领域服务接口
// 设计说明：
// 1. 负责参数校验、编排仓储调用、把存储层结果映射为领域结果/错误
// 2. 实现更新时的合并策略(Book.Replace)
type Service interface {
	// Create 创建图书，返回新ID
	Create(ctx context.Context, in CreateInput) (string, error)

	// GetByID 根据ID获取图书
	GetByID(ctx context.Context, id string) (*Book, error)

	// Update 整体替换标题、作者、页数，返回刷新后的图书
	Update(ctx context.Context, id string, in UpdateInput) (*Book, error)

	// ListActive 查询所有有效图书（按标题升序）
	ListActive(ctx context.Context) ([]*Book, error)

	// DeleteByID 删除图书
	DeleteByID(ctx context.Context, id string) error
}

// service 领域服务实现
type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: defaultNow}
}

// defaultNow 当前UTC时间，截断到毫秒（与文档库Date精度一致，写入和读回的值相等）
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create 创建图书
func (s *service) Create(ctx context.Context, in CreateInput) (string, error) {
	if hasInvalidParams(in.Title, in.Author, in.Pages) {
		return "", ErrInvalidParameters
	}

	book := NewBook(*in.Title, *in.Author, *in.Pages, s.now())

	id, err := s.repo.Create(ctx, book)
	if err != nil {
		return "", upstream(err, "创建图书失败")
	}
	return id, nil
}

// GetByID 根据ID获取图书
func (s *service) GetByID(ctx context.Context, id string) (*Book, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err, "查询图书失败")
	}
	return book, nil
}

// Update 更新图书
// 流程：
// 1. 参数校验（先于ID校验）
// 2. 查询现有图书
// 3. 合并生成新文档（保留ID和CreatedAt）
// 4. 写入;匹配数不为1视为不存在
// 5. 重新查询并返回
func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Book, error) {
	if hasInvalidParams(in.Title, in.Author, in.Pages) {
		return nil, ErrInvalidParameters
	}
	if id == "" {
		return nil, ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err, "查询图书失败")
	}

	merged := existing.Replace(*in.Title, *in.Author, *in.Pages, s.now())

	matched, err := s.repo.Update(ctx, merged)
	if err != nil {
		return nil, upstream(err, "更新图书失败")
	}
	if matched != 1 {
		return nil, ErrBookNotFound
	}

	refreshed, err := s.repo.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, upstream(err, "查询图书失败")
	}
	return refreshed, nil
}

// ListActive 查询所有有效图书
func (s *service) ListActive(ctx context.Context) ([]*Book, error) {
	books, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, upstream(err, "查询图书列表失败")
	}
	return books, nil
}

// DeleteByID 删除图书
// 删除数为0时返回ErrDeleteFailed
func (s *service) DeleteByID(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return upstream(err, "删除图书失败")
	}
	if deleted != 1 {
		return ErrDeleteFailed
	}
	return nil
}

// =========================================
// 辅助函数
// =========================================

// hasInvalidParams 任一字段缺失即为无效
func hasInvalidParams(title, author *string, pages *int64) bool {
	return title == nil || author == nil || pages == nil
}

// upstream 已分类的错误原样返回，其余包装为UpstreamFailure
func upstream(err error, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Wrap(err, message)
}
